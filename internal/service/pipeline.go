package service

import "context"

// stage es un paso de un flujo de autenticación. Un error corta el flujo y
// se traduce al outcome terminal; nil continúa con el paso siguiente.
type stage func(ctx context.Context) error

// runStages ejecuta los pasos en orden y se detiene en el primer error.
func runStages(ctx context.Context, stages ...stage) error {
	for _, st := range stages {
		if err := st(ctx); err != nil {
			return err
		}
	}
	return nil
}

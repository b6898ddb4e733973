package tenant

import (
	"sync"

	"github.com/jhoicas/Condominio-api/pkg/logger"
)

// task unidad de trabajo de un paso del desmontaje: una descripción para el
// log y la función que la ejecuta.
type task struct {
	desc string
	fn   func() error
}

// runStep ejecuta las tareas de un paso en paralelo y espera a todas antes de
// devolver. Las fallas se recogen por tarea, se registran y se cuentan; nunca
// abortan el paso: el desmontaje prefiere avanzar a garantizar cada byte.
func runStep(log *logger.Logger, step string, tasks []task) int {
	if len(tasks) == 0 {
		return 0
	}
	var wg sync.WaitGroup
	var mu sync.Mutex
	failures := 0

	for _, tk := range tasks {
		wg.Add(1)
		go func(tk task) {
			defer wg.Done()
			if err := tk.fn(); err != nil {
				mu.Lock()
				failures++
				mu.Unlock()
				log.Warn().Err(err).
					Str("step", step).
					Str("item", tk.desc).
					Msg("fallo parcial en desmontaje; se continúa")
			}
		}(tk)
	}
	wg.Wait()
	return failures
}

// Package faultreport contiene el flujo de estados de las partes de avería:
// una máquina de estados finita, pura y sin dependencias de almacenamiento.
package faultreport

import "github.com/jhoicas/Condominio-api/internal/domain/entity"

// transitions tabla dirigida de transiciones permitidas (sin ciclos).
// Los estados terminales no aparecen como clave: no tienen sucesores.
var transitions = map[string][]string{
	entity.StatusCreated:    {entity.StatusOpen, entity.StatusCancelled},
	entity.StatusOpen:       {entity.StatusInProgress, entity.StatusWaiting, entity.StatusCancelled},
	entity.StatusWaiting:    {entity.StatusInProgress, entity.StatusCancelled},
	entity.StatusInProgress: {entity.StatusWaiting, entity.StatusCompleted, entity.StatusIncomplete, entity.StatusNotPossible},
}

// Normalize traduce los alias terminales heredados (resolved, closed) a completed.
// Cualquier otro estado se devuelve tal cual.
func Normalize(status string) string {
	switch status {
	case entity.StatusResolved, entity.StatusClosed:
		return entity.StatusCompleted
	}
	return status
}

// IsTerminal indica si un estado (normalizado) no admite más transiciones.
func IsTerminal(status string) bool {
	_, ok := transitions[Normalize(status)]
	return !ok
}

// IsWorkflowRole indica si el rol puede aplicar cualquier transición listada.
func IsWorkflowRole(role string) bool {
	for _, r := range entity.WorkflowRoles {
		if r == role {
			return true
		}
	}
	return false
}

// AllowedNext calcula los estados alcanzables desde el estado actual para el
// llamador dado. Los roles de flujo pueden aplicar toda transición listada;
// el residente creador de la parte solo puede cancelar, y solo desde estados
// donde cancelled figura como sucesor. El resto de llamadores no obtiene nada.
func AllowedNext(current, role string, isCreator bool) []string {
	next, ok := transitions[Normalize(current)]
	if !ok {
		return nil
	}
	if IsWorkflowRole(role) {
		out := make([]string, len(next))
		copy(out, next)
		return out
	}
	if role == entity.RoleResident && isCreator {
		for _, s := range next {
			if s == entity.StatusCancelled {
				return []string{entity.StatusCancelled}
			}
		}
	}
	return nil
}

// CanTransition valida que target (normalizado) sea un sucesor permitido de
// current para el llamador dado. La tabla se aplica también en el servidor:
// un destino fuera de tabla se rechaza aunque el rol esté autorizado.
func CanTransition(current, target, role string, isCreator bool) bool {
	nt := Normalize(target)
	for _, s := range AllowedNext(current, role, isCreator) {
		if s == nt {
			return true
		}
	}
	return false
}

// Resolves indica si el destino implica resolución (stamp de resolvedAt la primera vez).
func Resolves(target string) bool {
	return Normalize(target) == entity.StatusCompleted
}

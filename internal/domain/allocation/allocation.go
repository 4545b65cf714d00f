package allocation

import "encoding/json"

// Assignment mapea una ventana del vehículo al instalador que la hizo.
// InstallerID nil significa ventana sin asignar (se excluye del reparto).
type Assignment struct {
	WindowID    string  `json:"windowId"`
	InstallerID *string `json:"installerId"`
	WindowName  string  `json:"windowName"`
}

// Parse decodifica el payload crudo de asignaciones. Payload vacío devuelve
// nil sin error; un payload que no parsea devuelve el error para que el
// caller lo degrade a "sin asignaciones" y lo reporte como warning.
func Parse(raw string) ([]Assignment, error) {
	if raw == "" {
		return nil, nil
	}
	var assignments []Assignment
	if err := json.Unmarshal([]byte(raw), &assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// Allocation es el tiempo repartido a un instalador para un trabajo.
type Allocation struct {
	InstallerID string
	Windows     int
	Minutes     int
}

// Split reparte durationMinutes entre instaladores en proporción a sus
// ventanas asignadas, con el método del resto mayor: cada instalador recibe
// floor(duration*ventanas/total) y los minutos sobrantes se reparten de a
// uno a los restos fraccionarios más grandes (empates: orden de primera
// asignación). Invariante: sum(Minutes) == durationMinutes, exacto.
func Split(durationMinutes int, assignments []Assignment) []Allocation {
	counts := make(map[string]int)
	var order []string
	for _, a := range assignments {
		if a.InstallerID == nil || *a.InstallerID == "" {
			continue
		}
		id := *a.InstallerID
		if _, seen := counts[id]; !seen {
			order = append(order, id)
		}
		counts[id]++
	}
	if len(order) == 0 {
		return nil
	}

	total := 0
	for _, id := range order {
		total += counts[id]
	}

	allocations := make([]Allocation, len(order))
	remainders := make([]int, len(order))
	assigned := 0
	for i, id := range order {
		windows := counts[id]
		base := durationMinutes * windows / total
		allocations[i] = Allocation{InstallerID: id, Windows: windows, Minutes: base}
		remainders[i] = durationMinutes * windows % total
		assigned += base
	}

	// Minutos que el floor dejó sin repartir: uno por cada resto, de mayor a menor.
	leftover := durationMinutes - assigned
	for leftover > 0 {
		best := -1
		for i := range allocations {
			if remainders[i] == 0 {
				continue
			}
			if best == -1 || remainders[i] > remainders[best] {
				best = i
			}
		}
		if best == -1 {
			break
		}
		allocations[best].Minutes++
		remainders[best] = 0
		leftover--
	}

	return allocations
}

// Fuente del conteo de ventanas completadas (representación dual del §modelo).
type Source string

const (
	// SourceAssigned: el conteo viene de asignaciones explícitas ventana→instalador.
	SourceAssigned Source = "assigned"
	// SourceAggregateFallback: sin asignaciones; se usa el total agregado del trabajo.
	SourceAggregateFallback Source = "aggregate_fallback"
)

// WindowCount unifica las dos representaciones de "ventanas completadas" de
// un trabajo. Se resuelve una sola vez aquí; los agregadores consumen el
// valor resuelto en lugar de reconciliar ad hoc en cada consulta.
type WindowCount struct {
	Count  int
	Source Source
}

// ResolveWindowCount prefiere el conteo explícito de asignaciones cuando
// existe; si no, cae al campo agregado TotalWindows del trabajo.
func ResolveWindowCount(assignedWindows, totalWindows int) WindowCount {
	if assignedWindows > 0 {
		return WindowCount{Count: assignedWindows, Source: SourceAssigned}
	}
	return WindowCount{Count: totalWindows, Source: SourceAggregateFallback}
}

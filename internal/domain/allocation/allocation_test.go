package allocation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/tintpro-api/internal/domain/allocation"
)

func ptr(s string) *string { return &s }

func assignments(windows map[string]int) []allocation.Assignment {
	var out []allocation.Assignment
	// Orden determinista: A, B, C... según aparición en los casos de test
	for _, id := range []string{"A", "B", "C", "D"} {
		for i := 0; i < windows[id]; i++ {
			out = append(out, allocation.Assignment{WindowID: id, InstallerID: ptr(id)})
		}
	}
	return out
}

// Escenario del modelo: 7 ventanas, 70 minutos, 4 para A y 3 para B.
func TestSplit_RepartoProporcionalExacto(t *testing.T) {
	result := allocation.Split(70, assignments(map[string]int{"A": 4, "B": 3}))
	require.Len(t, result, 2)

	assert.Equal(t, "A", result[0].InstallerID)
	assert.Equal(t, 4, result[0].Windows)
	assert.Equal(t, 40, result[0].Minutes)

	assert.Equal(t, "B", result[1].InstallerID)
	assert.Equal(t, 3, result[1].Windows)
	assert.Equal(t, 30, result[1].Minutes)
}

// La suma de minutos asignados debe igualar la duración total, exacto,
// incluso cuando el redondeo independiente produciría deriva.
func TestSplit_SumaIgualDuracion(t *testing.T) {
	cases := []struct {
		name     string
		duration int
		windows  map[string]int
	}{
		{"reparto exacto", 70, map[string]int{"A": 4, "B": 3}},
		{"tres instaladores con resto", 100, map[string]int{"A": 1, "B": 1, "C": 1}},
		{"duración menor que ventanas", 2, map[string]int{"A": 3, "B": 4}},
		{"un solo instalador", 45, map[string]int{"A": 5}},
		{"duración cero", 0, map[string]int{"A": 2, "B": 2}},
		{"resto grande", 59, map[string]int{"A": 7, "B": 5, "C": 3, "D": 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result := allocation.Split(tc.duration, assignments(tc.windows))
			sum := 0
			for _, a := range result {
				assert.GreaterOrEqual(t, a.Minutes, 0)
				assert.LessOrEqual(t, a.Minutes, tc.duration)
				sum += a.Minutes
			}
			assert.Equal(t, tc.duration, sum, "sum(minutos) debe igualar la duración")
		})
	}
}

// Los minutos sobrantes van a los restos fraccionarios más grandes.
func TestSplit_RestoMayor(t *testing.T) {
	// 100 minutos entre 3 ventanas iguales: 33+33+33 deja 1 minuto.
	// Restos iguales → gana el primer instalador por orden de asignación.
	result := allocation.Split(100, assignments(map[string]int{"A": 1, "B": 1, "C": 1}))
	require.Len(t, result, 3)
	assert.Equal(t, 34, result[0].Minutes)
	assert.Equal(t, 33, result[1].Minutes)
	assert.Equal(t, 33, result[2].Minutes)
}

// Ventanas sin instalador asignado no participan del reparto.
func TestSplit_IgnoraVentanasSinAsignar(t *testing.T) {
	input := []allocation.Assignment{
		{WindowID: "w1", InstallerID: ptr("A")},
		{WindowID: "w2", InstallerID: nil},
		{WindowID: "w3", InstallerID: ptr("A")},
		{WindowID: "w4", InstallerID: ptr("")},
	}
	result := allocation.Split(60, input)
	require.Len(t, result, 1)
	assert.Equal(t, "A", result[0].InstallerID)
	assert.Equal(t, 2, result[0].Windows)
	assert.Equal(t, 60, result[0].Minutes)
}

// Sin asignaciones efectivas no se crean registros de tiempo.
func TestSplit_SinAsignaciones(t *testing.T) {
	assert.Nil(t, allocation.Split(90, nil))
	assert.Nil(t, allocation.Split(90, []allocation.Assignment{
		{WindowID: "w1", InstallerID: nil},
	}))
}

func TestParse(t *testing.T) {
	t.Run("payload válido", func(t *testing.T) {
		raw := `[{"windowId":"w1","installerId":"abc","windowName":"driver front"},{"windowId":"w2","installerId":null,"windowName":"back glass"}]`
		got, err := allocation.Parse(raw)
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.NotNil(t, got[0].InstallerID)
		assert.Equal(t, "abc", *got[0].InstallerID)
		assert.Nil(t, got[1].InstallerID)
	})

	t.Run("payload vacío", func(t *testing.T) {
		got, err := allocation.Parse("")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("payload corrupto", func(t *testing.T) {
		_, err := allocation.Parse("{not json")
		assert.Error(t, err)
	})
}

func TestResolveWindowCount(t *testing.T) {
	t.Run("prefiere el conteo asignado", func(t *testing.T) {
		wc := allocation.ResolveWindowCount(5, 7)
		assert.Equal(t, 5, wc.Count)
		assert.Equal(t, allocation.SourceAssigned, wc.Source)
	})

	t.Run("cae al agregado sin asignaciones", func(t *testing.T) {
		wc := allocation.ResolveWindowCount(0, 7)
		assert.Equal(t, 7, wc.Count)
		assert.Equal(t, allocation.SourceAggregateFallback, wc.Source)
	})
}

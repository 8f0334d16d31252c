package depot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Heat struct{}

var heatKind = FactoryNewKind[Heat]()

var testConfig = ManagerConfig{InitialCapacity: 2, MaxCapacity: 16}

func TestManagerConstruction(t *testing.T) {
	tests := []struct {
		name      string
		cfg       ManagerConfig
		width     int
		defaults  []float64
		wantError bool
	}{
		{"Valid", testConfig, 2, nil, false},
		{"Valid with defaults", testConfig, 3, []float64{1, 2, 3}, false},
		{"Equal capacities", ManagerConfig{InitialCapacity: 8, MaxCapacity: 8}, 1, nil, false},
		{"Zero initial", ManagerConfig{InitialCapacity: 0, MaxCapacity: 8}, 1, nil, true},
		{"Negative max", ManagerConfig{InitialCapacity: 1, MaxCapacity: -8}, 1, nil, true},
		{"Initial above max", ManagerConfig{InitialCapacity: 9, MaxCapacity: 8}, 1, nil, true},
		{"Above global ceiling", ManagerConfig{InitialCapacity: 1, MaxCapacity: DefaultMaxRecords + 1}, 1, nil, true},
		{"Zero width", testConfig, 0, nil, true},
		{"Short defaults", testConfig, 3, []float64{1, 2}, true},
		{"Entity budget", ManagerConfig{InitialCapacity: 2, MaxCapacity: 16, MaxEntities: 4}, 1, nil, false},
		{"Negative entity budget", ManagerConfig{InitialCapacity: 2, MaxCapacity: 16, MaxEntities: -1}, 1, nil, true},
		{"Entity budget above max", ManagerConfig{InitialCapacity: 2, MaxCapacity: 16, MaxEntities: 17}, 1, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := FactoryNewFieldManager(heatKind, tt.width, tt.cfg, tt.defaults)
			if tt.wantError {
				assert.ErrorIs(t, err, ErrInvalidArgument)
				assert.Nil(t, m)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.cfg.MaxCapacity, m.MaxCapacity())
			assert.Equal(t, tt.cfg.InitialCapacity, m.Capacity())
			assert.Equal(t, SparseIndex, m.Indexing())
		})
	}
}

func TestVec2ManagerSwapRemove(t *testing.T) {
	registry := Factory.NewRegistry()
	velocities, err := FactoryNewVec2Manager[float64](VelocityKind, testConfig, nil, WithRegistry(registry))
	require.NoError(t, err)

	ids := []int{7, 3, 11}
	values := []Vec2[float64]{{1, -1}, {0, 0}, {-2.5, 4}}
	for i, id := range ids {
		require.NoError(t, velocities.AddVec(id, values[i]))
		assert.True(t, registry.Has(id, VelocityKind.Tag()))
	}
	assert.Equal(t, 3, velocities.Len())
	assert.GreaterOrEqual(t, velocities.Capacity(), 3)

	// Removing the first dense member moves the last one into its slot
	require.NoError(t, velocities.Remove(7))
	assert.Equal(t, 2, velocities.Len())
	assert.False(t, velocities.Contains(7))
	assert.False(t, registry.Has(7, VelocityKind.Tag()))

	key, err := velocities.Key(11)
	require.NoError(t, err)
	assert.Equal(t, 0, key)

	got, err := velocities.Vec(11)
	require.NoError(t, err)
	assert.Equal(t, values[2], got)
	got, err = velocities.Vec(3)
	require.NoError(t, err)
	assert.Equal(t, values[1], got)

	var order []int
	for _, id := range velocities.Entities() {
		order = append(order, id)
	}
	assert.Equal(t, []int{11, 3}, order)

	// The vacated tail record is cleared
	x, y := velocities.Vectors().Read(2)
	assert.Zero(t, x)
	assert.Zero(t, y)

	err = velocities.Remove(7)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	var notFound ComponentNotFoundError
	assert.ErrorAs(t, err, &notFound)
	assert.Equal(t, 2, velocities.Len())
}

func TestManagerRejectedAdds(t *testing.T) {
	registry := Factory.NewRegistry()
	velocities, err := FactoryNewVec2Manager[float64](VelocityKind, testConfig, nil, WithRegistry(registry))
	require.NoError(t, err)
	require.NoError(t, velocities.AddVec(4, Vec2[float64]{X: 9, Y: 9}))

	tests := []struct {
		name     string
		add      func() error
		category error
		target   interface{}
	}{
		{"Duplicate", func() error { return velocities.AddVec(4, Vec2[float64]{}) }, ErrInvalidArgument, &ComponentExistsError{}},
		{"Negative", func() error { return velocities.AddVec(-1, Vec2[float64]{}) }, ErrInvalidArgument, &EntityOutOfRangeError{}},
		{"Past max capacity", func() error { return velocities.AddVec(16, Vec2[float64]{}) }, ErrInvalidArgument, &EntityOutOfRangeError{}},
		{"Wrong width", func() error { return velocities.AddRecord(5, 1, 2, 3) }, ErrInvalidArgument, &RecordSizeError{}},
		{"No default", func() error { return velocities.Add(5) }, ErrUnsupported, &DefaultUnsupportedError{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.add()
			assert.ErrorIs(t, err, tt.category)
			assert.ErrorAs(t, err, tt.target)

			// Nothing changed
			assert.Equal(t, 1, velocities.Len())
			v, err := velocities.Vec(4)
			require.NoError(t, err)
			assert.Equal(t, Vec2[float64]{X: 9, Y: 9}, v)
			assert.False(t, registry.Has(5, VelocityKind.Tag()))
		})
	}
}

func TestDirectIndexedManager(t *testing.T) {
	positions, err := FactoryNewVec2Manager(PositionKind, testConfig, &Vec2[float64]{X: 1, Y: 2}, WithIndexing(DirectIndex))
	require.NoError(t, err)
	assert.Equal(t, DirectIndex, positions.Indexing())

	// The store grows until the entity's own slot exists
	require.NoError(t, positions.Add(9))
	assert.GreaterOrEqual(t, positions.Capacity(), 10)

	key, err := positions.Key(9)
	require.NoError(t, err)
	assert.Equal(t, 9, key)

	v, err := positions.Vec(9)
	require.NoError(t, err)
	assert.Equal(t, Vec2[float64]{X: 1, Y: 2}, v)

	require.NoError(t, positions.AddVec(0, Vec2[float64]{X: -3, Y: 3}))
	require.NoError(t, positions.SetVec(9, Vec2[float64]{X: 5, Y: 6}))
	require.NoError(t, positions.Remove(0))

	// Removal clears the entity's own record and moves nothing else
	x, y := positions.Vectors().Read(0)
	assert.Zero(t, x)
	assert.Zero(t, y)
	v, err = positions.Vec(9)
	require.NoError(t, err)
	assert.Equal(t, Vec2[float64]{X: 5, Y: 6}, v)

	_, err = positions.Key(0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = positions.Vec(0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorIs(t, positions.SetVec(0, Vec2[float64]{}), ErrInvalidArgument)
}

func TestManagerStorageCeiling(t *testing.T) {
	registry := Factory.NewRegistry()
	masses, err := FactoryNewFieldManager(MassKind, 1, testConfig, []float64{1}, WithRegistry(registry))
	require.NoError(t, err)

	// Lowering the global ceiling caps growth for existing stores too
	require.NoError(t, Config.SetMaxRecords(3))
	t.Cleanup(func() {
		Config.SetMaxRecords(DefaultMaxRecords)
	})

	for id := 0; id < 3; id++ {
		require.NoError(t, masses.Add(id))
	}

	err = masses.Add(3)
	assert.ErrorIs(t, err, ErrState)
	var maxErr MaxCapacityError
	assert.ErrorAs(t, err, &maxErr)

	// The failed add left no trace
	assert.Equal(t, 3, masses.Len())
	assert.False(t, masses.Contains(3))
	assert.False(t, registry.Has(3, MassKind.Tag()))
}

func TestFieldManagerRecords(t *testing.T) {
	heat, err := FactoryNewFieldManager[int32](heatKind, 3, testConfig, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, heat.Width())

	require.NoError(t, heat.AddRecord(4, 1, 2, 3))

	f, err := heat.Field(4, 2)
	require.NoError(t, err)
	assert.Equal(t, int32(3), f)

	require.NoError(t, heat.SetField(4, 0, -1))
	record, err := heat.Record(4)
	require.NoError(t, err)
	assert.Equal(t, []int32{-1, 2, 3}, record)

	// Records handed out are copies
	record[1] = 100
	f, err = heat.Field(4, 1)
	require.NoError(t, err)
	assert.Equal(t, int32(2), f)

	require.NoError(t, heat.SetRecord(4, 7, 8, 9))
	dst := make([]int32, 3)
	require.NoError(t, heat.ReadRecord(4, dst))
	assert.Equal(t, []int32{7, 8, 9}, dst)

	key, err := heat.Key(4)
	require.NoError(t, err)
	assert.Equal(t, []int32{7, 8, 9}, heat.Store().View(key))

	assert.ErrorIs(t, heat.ReadRecord(4, make([]int32, 1)), ErrInvalidArgument)
	assert.ErrorIs(t, heat.SetRecord(4, 1), ErrInvalidArgument)
	assert.ErrorIs(t, heat.SetField(4, 3, 0), ErrInvalidArgument)
	_, err = heat.Field(4, -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = heat.Field(5, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = heat.Record(5)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorIs(t, heat.Add(5), ErrUnsupported)
}

func TestManagerCompact(t *testing.T) {
	t.Run("Sparse", func(t *testing.T) {
		velocities, err := FactoryNewVec2Manager[float64](VelocityKind, testConfig, nil)
		require.NoError(t, err)
		for id := 0; id < 10; id++ {
			require.NoError(t, velocities.AddVec(id, Vec2[float64]{X: float64(id), Y: -float64(id)}))
		}
		for id := 2; id < 10; id++ {
			require.NoError(t, velocities.Remove(id))
		}
		require.Greater(t, velocities.Capacity(), 2)

		require.NoError(t, velocities.Compact())
		assert.Equal(t, 2, velocities.Capacity())

		for id := 0; id < 2; id++ {
			v, err := velocities.Vec(id)
			require.NoError(t, err)
			assert.Equal(t, Vec2[float64]{X: float64(id), Y: -float64(id)}, v)
		}
	})

	t.Run("Direct", func(t *testing.T) {
		positions, err := FactoryNewVec2Manager(PositionKind, testConfig, &Vec2[float64]{}, WithIndexing(DirectIndex))
		require.NoError(t, err)
		require.NoError(t, positions.AddVec(12, Vec2[float64]{X: 12, Y: 12}))
		require.NoError(t, positions.Add(1))
		// Growth stops at MaxCapacity records
		require.Equal(t, 16, positions.Capacity())

		// The highest present ID bounds the trim
		require.NoError(t, positions.Compact())
		assert.Equal(t, 13, positions.Capacity())
		v, err := positions.Vec(12)
		require.NoError(t, err)
		assert.Equal(t, Vec2[float64]{X: 12, Y: 12}, v)
	})
}

func TestVectorViewIsReadOnly(t *testing.T) {
	velocities, err := FactoryNewVec2Manager[float64](VelocityKind, testConfig, nil)
	require.NoError(t, err)
	require.NoError(t, velocities.AddVec(1, Vec2[float64]{X: 3, Y: 4}))

	sum := func(view VectorView[float64]) float64 {
		total := 0.0
		for _, id := range view.Entities() {
			v, err := view.Vec(id)
			require.NoError(t, err)
			total += v.X + v.Y
		}
		return total
	}
	assert.Equal(t, 7.0, sum(velocities))
}

func TestManagerEntityBudget(t *testing.T) {
	registry := Factory.NewRegistry()
	cfg := ManagerConfig{InitialCapacity: 2, MaxCapacity: 16, MaxEntities: 3}
	masses, err := FactoryNewFieldManager(MassKind, 1, cfg, []float64{1}, WithRegistry(registry))
	require.NoError(t, err)
	assert.Equal(t, 3, masses.MaxEntities())
	assert.Equal(t, 16, masses.MaxCapacity())

	for _, id := range []int{15, 7, 0} {
		require.NoError(t, masses.Add(id))
	}
	assert.Equal(t, 3, masses.Capacity(), "sparse storage stops at the budget")

	err = masses.Add(4)
	assert.ErrorIs(t, err, ErrState)
	var full CapacityReachedError
	require.ErrorAs(t, err, &full)
	assert.Equal(t, 3, full.Capacity)
	assert.Equal(t, 3, masses.Len())
	assert.False(t, registry.Has(4, MassKind.Tag()))

	// Removing frees a place
	require.NoError(t, masses.Remove(7))
	require.NoError(t, masses.Add(4))
	assert.True(t, masses.Contains(4))
}

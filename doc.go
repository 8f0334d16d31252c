/*
Package depot provides sparse-set component storage for Entity-Component-System (ECS) simulations.

Depot maps a sparse, potentially huge space of integer entity IDs onto dense, interleaved blocks of
primitive values. Adds, removes and lookups are O(1); growth is amortised and always explicit.

Core Concepts:

  - Buffer: A growable block of fixed-width primitive values.
  - SparseSet: Maps entity IDs to dense positions, removing by swap-and-pop.
  - Field stores: VectorStore and CompositeStore interleave several lanes per record. They do no
    checking and are meant for inner loops.
  - Managers: FieldManager, Vec2Manager and SpringManager pair a sparse set with field stores and
    report presence changes to a Registry. They check everything.
  - Kind: A component type and the registry bit it owns.

Basic Usage:

	registry := depot.Factory.NewRegistry()
	cfg := depot.ManagerConfig{InitialCapacity: 64, MaxCapacity: 1024}

	positions, _ := depot.FactoryNewVec2Manager(depot.PositionKind, cfg, &depot.Vec2[float64]{},
		depot.WithIndexing(depot.DirectIndex), depot.WithRegistry(registry))
	velocities, _ := depot.FactoryNewVec2Manager[float64](depot.VelocityKind, cfg, nil,
		depot.WithRegistry(registry))

	positions.Add(7)
	velocities.AddVec(7, depot.Vec2[float64]{X: 1, Y: 2})

	// Integrate every entity that has both
	query := depot.Factory.NewQuery()
	node := query.And(depot.PositionKind, depot.VelocityKind)
	cursor := depot.Factory.NewCursor(node, registry, velocities)

	for _, id := range cursor.Entities() {
		vel, _ := velocities.Vec(id)
		pos, _ := positions.Vec(id)
		positions.SetVec(id, depot.Vec2[float64]{X: pos.X + vel.X*dt, Y: pos.Y + vel.Y*dt})
	}

None of the types here are safe for concurrent use; serialize access per manager.
*/
package depot

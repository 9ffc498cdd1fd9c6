package engine

// Simulation groups the engine together with the components and ports
// that have been registered with it, so components can be looked up by
// name after construction.
type Simulation struct {
	engine Engine

	components    []Component
	compNameIndex map[string]int
}

// NewSimulation creates a Simulation wrapping the given engine.
func NewSimulation(e Engine) *Simulation {
	return &Simulation{engine: e, compNameIndex: make(map[string]int)}
}

// GetEngine returns the engine backing this simulation.
func (s *Simulation) GetEngine() Engine {
	return s.engine
}

// RegisterComponent tracks a component by name for later lookup.
func (s *Simulation) RegisterComponent(c Component) {
	if _, found := s.compNameIndex[c.Name()]; found {
		panic("component " + c.Name() + " already registered")
	}

	s.components = append(s.components, c)
	s.compNameIndex[c.Name()] = len(s.components) - 1
}

// GetComponentByName returns a previously registered component.
func (s *Simulation) GetComponentByName(name string) Component {
	return s.components[s.compNameIndex[name]]
}

// Package descriptor loads the compact system descriptor that a LAbS
// translator emits alongside a model: the set of environment, interface
// and stigmergic variables, the spawn table mapping agent-id ranges to
// agent types, and the raw property strings to compile.
package descriptor

// Store identifies which of the three LAbS variable stores a Variable
// belongs to.
type Store string

// The three variable stores of a LAbS system.
const (
	StoreEnv       Store = "e"
	StoreInterface Store = "i"
	StoreLstig     Store = "lstig"
)

// UndefValue is the sentinel value an "undef"-initialized variable
// takes on, mirroring the reference translator's UNDEF constant.
const UndefValue = -32767

// Variable describes a single scalar or array variable: its position
// within its store, its declared size, and the domain of values its
// init expression admits.
type Variable struct {
	Index   int
	Name    string
	Size    int
	IsArray bool
	Store   Store
	Values  []int
}

// Agent is one agent type: a name and the interface/stigmergy
// variables its instances carry, keyed by variable index.
type Agent struct {
	Name  string
	Iface map[int]*Variable
	Lstig map[int]*Variable
}

// spawnRange is a half-open [Lo, Hi) range of agent ids bound to Agent.
type spawnRange struct {
	Lo, Hi int
	Agent  *Agent
}

// Spawn maps agent ids to agent types via a table of half-open ranges.
type Spawn struct {
	ranges []spawnRange
}

// AgentAt returns the agent type owning id, if any.
func (s *Spawn) AgentAt(id int) (*Agent, bool) {
	for _, r := range s.ranges {
		if r.Lo <= id && id < r.Hi {
			return r.Agent, true
		}
	}
	return nil, false
}

// TypeIDs returns every agent id whose type is named typeName, in
// ascending order. The second return value is false if no spawn range
// uses that type name.
func (s *Spawn) TypeIDs(typeName string) ([]int, bool) {
	for _, r := range s.ranges {
		if r.Agent.Name == typeName {
			ids := make([]int, 0, r.Hi-r.Lo)
			for id := r.Lo; id < r.Hi; id++ {
				ids = append(ids, id)
			}
			return ids, true
		}
	}
	return nil, false
}

// TypeNames returns every distinct agent type name in spawn order.
func (s *Spawn) TypeNames() []string {
	names := make([]string, 0, len(s.ranges))
	seen := make(map[string]bool)
	for _, r := range s.ranges {
		if !seen[r.Agent.Name] {
			seen[r.Agent.Name] = true
			names = append(names, r.Agent.Name)
		}
	}
	return names
}

// NumAgents returns the total number of agents spawned.
func (s *Spawn) NumAgents() int {
	max := 0
	for _, r := range s.ranges {
		if r.Hi > max {
			max = r.Hi
		}
	}
	return max
}

// Ranges exposes the underlying half-open ranges, in descriptor order.
func (s *Spawn) Ranges() []spawnRange {
	return s.ranges
}

// LoID returns the range's inclusive lower bound.
func (r spawnRange) LoID() int { return r.Lo }

// HiID returns the range's exclusive upper bound.
func (r spawnRange) HiID() int { return r.Hi }

// TypeName is the agent type name bound to this range.
func (r spawnRange) TypeName() string { return r.Agent.Name }

// Info is the fully parsed system descriptor: the spawn table and the
// three merged variable stores, plus the raw property list.
type Info struct {
	Spawn      *Spawn
	I          map[int]*Variable
	Lstig      map[int]*Variable
	E          map[int]*Variable
	Properties []string
	Raw        string
}

package descriptor

import (
	"strconv"
	"strings"

	"github.com/labs-lang/sliver/internal/errors"
)

// Parse deserializes a descriptor blob of the form
//
//	ENV_VARS | COMP_NAME LO,HI | IFACE | LSTIG | ... | PROPERTIES
//
// where each component contributes three "|"-separated segments
// (header, IFACE, LSTIG), ENV_VARS and the IFACE/LSTIG segments are
// ";"-joined "INDEX=NAME=INIT" entries, and PROPERTIES is a
// ";"-joined list of property strings for the parser stage.
func Parse(txt string) (*Info, error) {
	if strings.TrimSpace(txt) == "" {
		return nil, errors.WrapReport(errors.New(errors.DSC001, "descriptor blob is empty", nil))
	}

	lines := strings.Split(txt, "|")
	if len(lines) < 2 {
		return nil, errors.WrapReport(errors.New(errors.DSC005,
			"descriptor must contain at least an environment segment and a property segment", nil))
	}

	envSeg := lines[0]
	compSegs := lines[1 : len(lines)-1]
	propSeg := lines[len(lines)-1]

	spawn, err := parseSpawn(compSegs)
	if err != nil {
		return nil, err
	}

	envVars, err := parseVariableList(envSeg, StoreEnv)
	if err != nil {
		return nil, err
	}

	info := &Info{
		Spawn: spawn,
		I:     map[int]*Variable{},
		Lstig: map[int]*Variable{},
		E:     map[int]*Variable{},
		Raw:   txt,
	}
	for _, v := range envVars {
		info.E[v.Index] = v
	}
	for _, r := range spawn.ranges {
		for idx, v := range r.Agent.Iface {
			info.I[idx] = v
		}
		for idx, v := range r.Agent.Lstig {
			info.Lstig[idx] = v
		}
	}

	if propSeg != "" {
		for _, p := range strings.Split(propSeg, ";") {
			if p != "" {
				info.Properties = append(info.Properties, p)
			}
		}
	}

	return info, nil
}

// parseSpawn parses the descriptor's component segments, which arrive
// as a flat triple-stride list: (header, iface, lstig) repeated once
// per agent type.
func parseSpawn(segs []string) (*Spawn, error) {
	if len(segs)%3 != 0 {
		return nil, errors.WrapReport(errors.New(errors.DSC002,
			"spawn segment count is not a multiple of three (name/iface/lstig triples)", nil))
	}

	spawn := &Spawn{}
	for i := 0; i < len(segs); i += 3 {
		header, ifaceSeg, lstigSeg := segs[i], segs[i+1], segs[i+2]

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 {
			return nil, errors.WrapReport(errors.New(errors.DSC002, "malformed spawn header: "+header, nil))
		}
		name := parts[0]
		bounds := strings.SplitN(parts[1], ",", 2)
		if len(bounds) != 2 {
			return nil, errors.WrapReport(errors.New(errors.DSC002, "malformed spawn range: "+parts[1], nil))
		}
		lo, errLo := strconv.Atoi(bounds[0])
		hi, errHi := strconv.Atoi(bounds[1])
		// lo == hi is legal and declares a type with zero concrete
		// instances (spec §8 scenario S6): a quantifier ranging over
		// it must still eliminate to an empty Nary, not a parse error.
		if errLo != nil || errHi != nil || lo > hi {
			return nil, errors.WrapReport(errors.New(errors.DSC002, "invalid spawn bounds: "+parts[1], nil))
		}

		ifaceVars, err := parseVariableList(ifaceSeg, StoreInterface)
		if err != nil {
			return nil, err
		}
		lstigVars, err := parseVariableList(lstigSeg, StoreLstig)
		if err != nil {
			return nil, err
		}

		agent := &Agent{Name: name, Iface: map[int]*Variable{}, Lstig: map[int]*Variable{}}
		for _, v := range ifaceVars {
			agent.Iface[v.Index] = v
		}
		for _, v := range lstigVars {
			agent.Lstig[v.Index] = v
		}

		spawn.ranges = append(spawn.ranges, spawnRange{Lo: lo, Hi: hi, Agent: agent})
	}

	return spawn, nil
}

// parseVariableList parses a ";"-joined list of "INDEX=NAME=INIT"
// entries into Variables belonging to store.
func parseVariableList(seg string, store Store) ([]*Variable, error) {
	if seg == "" {
		return nil, nil
	}
	var out []*Variable
	seen := map[int]bool{}
	for _, entry := range strings.Split(seg, ";") {
		if entry == "" {
			continue
		}
		v, err := parseVariable(entry, store)
		if err != nil {
			return nil, err
		}
		if seen[v.Index] {
			return nil, errors.WrapReport(errors.New(errors.DSC003,
				"duplicate variable index "+strconv.Itoa(v.Index), nil))
		}
		seen[v.Index] = true
		out = append(out, v)
	}
	return out, nil
}

func parseVariable(entry string, store Store) (*Variable, error) {
	fields := strings.SplitN(entry, "=", 3)
	if len(fields) != 3 {
		return nil, errors.WrapReport(errors.New(errors.DSC005, "malformed variable entry: "+entry, nil))
	}
	index, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, errors.WrapReport(errors.New(errors.DSC005, "non-numeric variable index: "+fields[0], nil))
	}

	name := fields[1]
	size := 1
	isArray := false
	if open := strings.IndexByte(name, '['); open >= 0 && strings.HasSuffix(name, "]") {
		sizeStr := name[open+1 : len(name)-1]
		n, err := strconv.Atoi(sizeStr)
		if err != nil {
			return nil, errors.WrapReport(errors.New(errors.DSC005, "malformed array size in: "+name, nil))
		}
		size = n
		isArray = true
		name = name[:open]
	}

	values, err := parseInit(fields[2], index)
	if err != nil {
		return nil, err
	}

	return &Variable{
		Index:   index,
		Name:    name,
		Size:    size,
		IsArray: isArray,
		Store:   store,
		Values:  values,
	}, nil
}

// parseInit resolves a variable's init specification into its domain
// of admissible values: an enumeration "[e1,e2,...]", a half-open
// range "lo..hi", the literal "undef", or a single expression.
func parseInit(init string, selfIndex int) ([]int, error) {
	switch {
	case init == "undef":
		return []int{UndefValue}, nil

	case strings.HasPrefix(init, "[") && strings.HasSuffix(init, "]"):
		inner := init[1 : len(init)-1]
		var values []int
		for _, e := range strings.Split(inner, ",") {
			v, err := evalInit(e, selfIndex)
			if err != nil {
				return nil, errors.WrapReport(errors.New(errors.DSC006, "invalid enumeration entry: "+e, nil))
			}
			values = append(values, v)
		}
		return values, nil

	case strings.Contains(init, ".."):
		parts := strings.SplitN(init, "..", 2)
		lo, errLo := evalInit(parts[0], selfIndex)
		hi, errHi := evalInit(parts[1], selfIndex)
		if errLo != nil || errHi != nil {
			return nil, errors.WrapReport(errors.New(errors.DSC006, "invalid range bounds: "+init, nil))
		}
		values := make([]int, 0, hi-lo)
		for v := lo; v < hi; v++ {
			values = append(values, v)
		}
		return values, nil

	default:
		v, err := evalInit(init, selfIndex)
		if err != nil {
			return nil, errors.WrapReport(errors.New(errors.DSC006, "invalid init expression: "+init, nil))
		}
		return []int{v}, nil
	}
}

// LookupVar finds a variable by name, searching e, then i, then lstig
// — the same precedence order the reference translator uses. The i and
// lstig searches also cover each agent type's own stores, so a variable
// whose index another agent type reuses in the merged maps is still
// found.
func (info *Info) LookupVar(name string) (*Variable, bool) {
	if v, ok := findByName(info.E, name); ok {
		return v, true
	}
	if v, ok := findByName(info.I, name); ok {
		return v, true
	}
	if info.Spawn != nil {
		for _, r := range info.Spawn.ranges {
			if v, ok := findByName(r.Agent.Iface, name); ok {
				return v, true
			}
		}
	}
	if v, ok := findByName(info.Lstig, name); ok {
		return v, true
	}
	if info.Spawn != nil {
		for _, r := range info.Spawn.ranges {
			if v, ok := findByName(r.Agent.Lstig, name); ok {
				return v, true
			}
		}
	}
	return nil, false
}

func findByName(store map[int]*Variable, name string) (*Variable, bool) {
	for _, v := range store {
		if v.Name == name {
			return v, true
		}
	}
	return nil, false
}

package mcl

import (
	"strconv"
	"strings"

	"github.com/labs-lang/sliver/internal/descriptor"
	"github.com/labs-lang/sliver/internal/errors"
)

// resolved is a fresh propositional variable name decomposed back into
// the store variable it reads, the concrete agent id that owns it, and
// an optional constant array offset.
type resolved struct {
	Var     *descriptor.Variable
	AgentID int
	Offset  int
}

// resolveFreshName inverts internal/elim.FreshName: "name_agentid" for
// scalars, "name_offset_agentid" for array elements. Agent ids and
// offsets are always decimal, so splitting from the right is safe even
// when the base variable name itself contains underscores.
func resolveFreshName(name string, info *descriptor.Info) (resolved, error) {
	base, agentStr, ok := rsplitOnce(name, "_")
	if !ok {
		return resolved{}, unknownVar(name)
	}
	agentID, err := strconv.Atoi(agentStr)
	if err != nil {
		return resolved{}, unknownVar(name)
	}

	if v, ok := info.LookupVar(base); ok && !v.IsArray {
		return resolved{Var: v, AgentID: agentID, Offset: 0}, nil
	}

	baseName, offsetStr, ok := rsplitOnce(base, "_")
	if !ok {
		return resolved{}, unknownVar(name)
	}
	offset, err := strconv.Atoi(offsetStr)
	if err != nil {
		return resolved{}, unknownVar(name)
	}
	v, ok := info.LookupVar(baseName)
	if !ok || !v.IsArray || offset < 0 || offset >= v.Size {
		return resolved{}, unknownVar(name)
	}
	return resolved{Var: v, AgentID: agentID, Offset: offset}, nil
}

func rsplitOnce(s, sep string) (before, after string, ok bool) {
	i := strings.LastIndex(s, sep)
	if i < 0 {
		return "", "", false
	}
	return s[:i], s[i+len(sep):], true
}

func unknownVar(name string) error {
	return errors.WrapReport(errors.New(errors.MCL001, "unknown variable "+name, map[string]any{"name": name}))
}

// label maps a variable store to its generated-LTS action label.
func label(store descriptor.Store) string {
	switch store {
	case descriptor.StoreInterface:
		return "ATTR"
	case descriptor.StoreLstig:
		return "L"
	default:
		return "E"
	}
}

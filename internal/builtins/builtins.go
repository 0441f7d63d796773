// Package builtins holds the fixed signatures of the language's built-in
// functions, used by the resolver to pre-register them in the global frame
// exactly as if they were user-declared functions. internal/interp carries
// the matching runtime implementations; this package knows nothing about
// values, only types.
package builtins

import "github.com/nyjc-computing/pseudo9608/internal/types"

func byValue(name string, t types.Type) types.Param {
	return types.Param{Name: name, Type: t, Mode: types.ByValue}
}

// Signatures returns the name -> CALLABLE type of every built-in function,
// in the form the resolver inserts directly into the global frame.
func Signatures() map[string]types.Type {
	return map[string]types.Type{
		"EOF": types.NewCallable([]types.Param{
			byValue("Name", types.StringT),
		}, ptr(types.Bool)),
		"INT": types.NewCallable([]types.Param{
			byValue("X", types.RealT),
		}, ptr(types.Integer)),
		"MID": types.NewCallable([]types.Param{
			byValue("S", types.StringT),
			byValue("Start", types.Integer),
			byValue("Length", types.Integer),
		}, ptr(types.StringT)),
		"LENGTH": types.NewCallable([]types.Param{
			byValue("S", types.StringT),
		}, ptr(types.Integer)),
		"LEFT": types.NewCallable([]types.Param{
			byValue("S", types.StringT),
			byValue("N", types.Integer),
		}, ptr(types.StringT)),
		"RIGHT": types.NewCallable([]types.Param{
			byValue("S", types.StringT),
			byValue("N", types.Integer),
		}, ptr(types.StringT)),
		"ASC": types.NewCallable([]types.Param{
			byValue("S", types.StringT),
		}, ptr(types.Integer)),
		"RANDOMBETWEEN": types.NewCallable([]types.Param{
			byValue("Lo", types.Integer),
			byValue("Hi", types.Integer),
		}, ptr(types.Integer)),
		"RND": types.NewCallable(nil, ptr(types.RealT)),
	}
}

func ptr(t types.Type) *types.Type { return &t }

// Names lists every built-in in a fixed order, for callers that need a
// deterministic iteration order (the package's tests walk it).
var Names = []string{"EOF", "INT", "MID", "LENGTH", "LEFT", "RIGHT", "ASC", "RANDOMBETWEEN", "RND"}

// export by github.com/goplus/ixgo/cmd/qexp

package formula

import (
	q "github.com/goplus/pasys/formula"

	"go/constant"
	"reflect"

	"github.com/goplus/ixgo"
)

func init() {
	ixgo.RegisterPackage(&ixgo.Package{
		Name: "formula",
		Path: "github.com/goplus/pasys/formula",
		Deps: map[string]string{
			"github.com/goplus/pasys/internal/errs": "errs",
			"gopkg.in/yaml.v3":                      "yaml",
			"maps":                                  "maps",
			"os":                                    "os",
			"path/filepath":                         "filepath",
			"sort":                                  "sort",
		},
		Interfaces: map[string]reflect.Type{},
		NamedTypes: map[string]reflect.Type{
			"CMake":   reflect.TypeOf((*q.CMake)(nil)).Elem(),
			"Formula": reflect.TypeOf((*q.Formula)(nil)).Elem(),
			"Matrix":  reflect.TypeOf((*q.Matrix)(nil)).Elem(),
			"RecipeF": reflect.TypeOf((*q.RecipeF)(nil)).Elem(),
			"Source":  reflect.TypeOf((*q.Source)(nil)).Elem(),
		},
		AliasTypes: map[string]reflect.Type{},
		Vars:       map[string]reflect.Value{},
		Funcs: map[string]reflect.Value{
			"Gopt_RecipeF_Main": reflect.ValueOf(q.Gopt_RecipeF_Main),
			"Load":              reflect.ValueOf(q.Load),
			"PortAudio":         reflect.ValueOf(q.PortAudio),
		},
		TypedConsts: map[string]ixgo.TypedConst{},
		UntypedConsts: map[string]ixgo.UntypedConst{
			"GopPackage": {Typ: "untyped bool", Value: constant.MakeBool(bool(q.GopPackage))},
		},
	})
}

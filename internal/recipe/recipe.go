// Package recipe loads a library recipe from a YAML file or an XGo
// classfile.
package recipe

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/goplus/ixgo"
	"github.com/goplus/ixgo/xgobuild"
	"github.com/goplus/pasys/formula"
	"github.com/goplus/pasys/internal/errs"

	pasysixgo "github.com/goplus/pasys/internal/ixgo"
)

// Load reads the recipe at path. Files named <name>_pasys.gox are
// interpreted as XGo classfiles, anything else is parsed as YAML.
func Load(path string) (*formula.Formula, error) {
	if !strings.HasSuffix(path, pasysixgo.Ext) {
		return formula.Load(path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.FS("formula", err)
	}
	f, err := loadClass(path, content)
	if err != nil {
		return nil, errs.New(errs.ErrMalformedInput, "formula "+path, err)
	}
	return f, nil
}

func loadClass(path string, content []byte) (*formula.Formula, error) {
	ctx := ixgo.NewContext(0)

	source, err := xgobuild.BuildFile(ctx, path, content)
	if err != nil {
		return nil, err
	}
	pkgs, err := ctx.LoadFile("main.go", source)
	if err != nil {
		return nil, err
	}
	interp, err := ctx.NewInterp(pkgs)
	if err != nil {
		return nil, err
	}
	if err = interp.RunInit(); err != nil {
		return nil, err
	}

	structName := strings.TrimSuffix(filepath.Base(path), pasysixgo.Ext)
	typ, ok := interp.GetType(structName)
	if !ok {
		return nil, fmt.Errorf("class %s not found", structName)
	}
	val := reflect.New(typ)
	val.Interface().(interface{ Main() }).Main()

	class := val.Elem().FieldByName("RecipeF")
	if !class.IsValid() {
		return nil, fmt.Errorf("class %s does not embed formula.RecipeF", structName)
	}
	return class.Addr().Interface().(*formula.RecipeF).Formula()
}

package ixgo

import (
	"github.com/goplus/ixgo/xgobuild"
	"github.com/goplus/mod/modfile"

	_ "github.com/goplus/pasys/internal/ixgo/pkg/github.com/goplus/pasys/formula"
)

// Ext is the file suffix of an XGo recipe, e.g. portaudio_pasys.gox.
const Ext = "_pasys.gox"

func init() {
	xgobuild.RegisterProject(&modfile.Project{
		Ext:   Ext,
		Class: "RecipeF",
		PkgPaths: []string{
			"github.com/goplus/pasys/formula",
		},
	})
}

package toolconfig

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// HCL renders tools in the configuration file format Load reads.
func (t Tools) HCL() []byte {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	construction := root.AppendNewBlock("construction", nil).Body()
	construction.SetAttributeValue("interpreter", cty.StringVal(t.Interpreter))
	construction.SetAttributeValue("script", cty.StringVal(t.ConstructionScript))
	root.AppendNewline()

	indexing := root.AppendNewBlock("indexing", nil).Body()
	indexing.SetAttributeValue("binary", cty.StringVal(t.IndexingBinary))
	libs := make([]cty.Value, 0, len(t.LibraryPaths))
	for _, p := range t.LibraryPaths {
		libs = append(libs, cty.StringVal(p))
	}
	if len(libs) == 0 {
		indexing.SetAttributeValue("library_paths", cty.ListValEmpty(cty.String))
	} else {
		indexing.SetAttributeValue("library_paths", cty.ListVal(libs))
	}

	return f.Bytes()
}

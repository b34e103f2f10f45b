package gen

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"binding-generator/internal/plan"
)

type javaData struct {
	ToolName string
	Package  string
	Class    string
	Relation string
	Parent   string
	Methods  []javaMethodData
}

type javaMethodData struct {
	Name       string
	NativeName string
	Return     string
	// Params is the Java parameter list without the leading ptr.
	Params string
	Args   string
}

func buildJavaData(toolName string, p *plan.ResolvedProxy) *javaData {
	data := &javaData{
		ToolName: toolName,
		Package:  p.JavaPackage,
		Class:    p.JavaClass,
		Relation: "extends",
		Parent:   p.JavaParent,
	}

	if p.Implements {
		data.Relation = "implements"
	}

	for _, m := range p.Methods {
		params := make([]string, 0, len(m.Params))
		args := make([]string, 0, len(m.Params))

		for _, param := range m.Params {
			params = append(params, param.JavaType+" "+param.Name)
			args = append(args, param.Name)
		}

		data.Methods = append(data.Methods, javaMethodData{
			Name:       m.JavaName,
			NativeName: m.NativeName,
			Return:     m.JavaReturn,
			Params:     strings.Join(params, ", "),
			Args:       strings.Join(args, ", "),
		})
	}

	return data
}

var javaTemplate = template.Must(template.New("java").Parse(`// Code generated by {{.ToolName}}. DO NOT EDIT.
{{if .Package}}
package {{.Package}};
{{end}}
@SuppressWarnings("rawtypes")
class {{.Class}} {{.Relation}} {{.Parent}} {
    long ptr;

    private {{.Class}}(long ptr) {
        this.ptr = ptr;
    }

    @Override
    protected void finalize() throws Throwable {
        native_finalize(this.ptr);
    }
    private native void native_finalize(long ptr);
{{range .Methods}}
    @Override
    public {{.Return}} {{.Name}}({{.Params}}) {
        {{if ne .Return "void"}}return {{end}}{{.NativeName}}(ptr{{if .Args}}, {{.Args}}{{end}});
    }
    private native {{.Return}} {{.NativeName}}(long ptr{{if .Params}}, {{.Params}}{{end}});
{{end -}}
}
`))

// Java renders the companion class of one proxy.
func (g *Generator) Java(p *plan.ResolvedProxy) ([]byte, error) {
	var buf bytes.Buffer
	if err := javaTemplate.Execute(&buf, buildJavaData(g.config.ToolName, p)); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	return buf.Bytes(), nil
}

package gen

import (
	"bytes"
	"context"
	"fmt"
	"go/token"
	"os"
	"path/filepath"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"

	"github.com/syssam/entityreader"
	"github.com/syssam/entityreader/export"
	"github.com/syssam/entityreader/property"
	"github.com/syssam/entityreader/reader"
	"github.com/syssam/entityreader/schema"
	"github.com/syssam/entityreader/schema/edge"
	"github.com/syssam/entityreader/schema/field"
)

const (
	propertyPkg = "github.com/syssam/entityreader/property"
	schemaPkg   = "github.com/syssam/entityreader/schema"
	fieldPkg    = "github.com/syssam/entityreader/schema/field"
	edgePkg     = "github.com/syssam/entityreader/schema/edge"
)

// RegistryFile is the name of the file holding the Descriptors function.
const RegistryFile = "descriptors.go"

// kindIdents maps kinds to their exported constant names.
var kindIdents = map[property.Kind]string{
	property.Identifier:    "Identifier",
	property.Column:        "Column",
	property.ReferenceOne:  "ReferenceOne",
	property.ReferenceMany: "ReferenceMany",
}

// Generator renders descriptor registration code for a snapshot.
type Generator struct {
	snap   *export.Snapshot
	outDir string
	cfg    Config
}

// New returns a Generator writing into outDir.
func New(snap *export.Snapshot, outDir string, opts ...Option) (*Generator, error) {
	if snap == nil {
		return nil, entityreader.NewConfigError("Snapshot", nil, "snapshot cannot be nil")
	}
	cfg := defaultConfig()
	cfg.Package = filepath.Base(outDir)
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if !token.IsIdentifier(cfg.Package) {
		return nil, entityreader.NewConfigError("Package", cfg.Package, "package name must be a Go identifier; use WithPackage")
	}
	for _, e := range snap.Entities {
		if !token.IsIdentifier(e.Name) {
			return nil, entityreader.NewConfigError("Entity", e.Name, "entity name must be a Go identifier")
		}
	}
	return &Generator{snap: snap, outDir: outDir, cfg: cfg}, nil
}

// FileName returns the name of the file generated for an entity.
func FileName(entity string) string {
	return inflect.Underscore(entity) + "_descriptors.go"
}

// Generate writes one file per entity and the registry file.
func (g *Generator) Generate(ctx context.Context) error {
	if err := os.MkdirAll(g.outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.cfg.Workers)
	for _, e := range g.snap.Entities {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			buf, err := g.RenderEntity(e.Name)
			if err != nil {
				return err
			}
			return g.write(e.Name, FileName(e.Name), buf)
		})
	}
	eg.Go(func() error {
		buf, err := g.RenderRegistry()
		if err != nil {
			return err
		}
		return g.write("", RegistryFile, buf)
	})
	return eg.Wait()
}

func (g *Generator) write(entity, name string, buf []byte) error {
	if err := os.WriteFile(filepath.Join(g.outDir, name), buf, 0o644); err != nil {
		return NewGenerationError(entity, name, "write", err)
	}
	return nil
}

// RenderEntity renders the descriptor function of one entity.
func (g *Generator) RenderEntity(name string) ([]byte, error) {
	e, ok := g.snap.Entity(name)
	if !ok {
		return nil, entityreader.UnknownEntityError(name)
	}
	f := g.newFile()
	values := jen.Dict{}
	for _, p := range e.Properties {
		code, err := descriptorCode(p)
		if err != nil {
			return nil, NewGenerationError(e.Name, FileName(e.Name), fmt.Sprintf("property %q", p.Name), err)
		}
		values[jen.Lit(p.Name)] = code
	}
	f.Commentf("%sDescriptors returns the property descriptors of %s.", e.Name, e.Name)
	f.Func().Id(e.Name+"Descriptors").Params().Map(jen.String()).Op("*").Qual(propertyPkg, "Descriptor").Block(
		jen.Return(jen.Map(jen.String()).Op("*").Qual(propertyPkg, "Descriptor").Values(values)),
	)
	return g.format(e.Name, FileName(e.Name), f)
}

// RenderRegistry renders the Descriptors function returning all entities.
func (g *Generator) RenderRegistry() ([]byte, error) {
	f := g.newFile()
	values := jen.Dict{}
	for _, e := range g.snap.Entities {
		values[jen.Lit(e.Name)] = jen.Id(e.Name + "Descriptors").Call()
	}
	f.Comment("Descriptors returns the descriptor sets of all entities keyed by entity name.")
	f.Func().Id("Descriptors").Params().Map(jen.String()).Map(jen.String()).Op("*").Qual(propertyPkg, "Descriptor").Block(
		jen.Return(jen.Map(jen.String()).Map(jen.String()).Op("*").Qual(propertyPkg, "Descriptor").Values(values)),
	)
	return g.format("", RegistryFile, f)
}

func (g *Generator) newFile() *jen.File {
	f := jen.NewFile(g.cfg.Package)
	if g.cfg.Header != "" {
		f.HeaderComment(g.cfg.Header)
	}
	return f
}

func (g *Generator) format(entity, name string, f *jen.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, NewGenerationError(entity, name, "render", err)
	}
	out, err := imports.Process(filepath.Join(g.outDir, name), buf.Bytes(), nil)
	if err != nil {
		return nil, NewGenerationError(entity, name, "format", err)
	}
	return out, nil
}

// descriptorCode renders a property.MustNew call for p.
func descriptorCode(p export.Property) (jen.Code, error) {
	kind, err := property.ParseKind(p.Kind)
	if err != nil {
		return nil, err
	}
	args := []jen.Code{jen.Lit(p.Name), jen.Qual(propertyPkg, kindIdents[kind])}
	if p.Target != "" {
		args = append(args, jen.Qual(propertyPkg, "WithTarget").Call(jen.Lit(p.Target)))
	}
	if p.Annotation.Tag != "" {
		code, err := annotationCode(p.Annotation)
		if err != nil {
			return nil, err
		}
		args = append(args, jen.Qual(propertyPkg, "WithAnnotation").Call(code))
	}
	for _, extra := range p.Extras {
		code, err := annotationCode(extra)
		if err != nil {
			return nil, err
		}
		args = append(args, jen.Qual(propertyPkg, "WithExtra").Call(code))
	}
	return jen.Qual(propertyPkg, "MustNew").Call(args...), nil
}

// annotationCode renders a typed literal for a serialized annotation.
func annotationCode(a export.Annotation) (jen.Code, error) {
	ann, err := reader.NewAnnotation(a.Tag, a.Attrs)
	if err != nil {
		return nil, err
	}
	switch ann := ann.(type) {
	case *field.ID:
		return jen.Op("&").Qual(fieldPkg, "ID").Values(), nil
	case *field.Column:
		return jen.Op("&").Qual(fieldPkg, "Column").Values(fields(
			"ColumnName", ann.ColumnName,
			"Type", ann.Type,
			"Length", ann.Length,
			"Nullable", ann.Nullable,
			"Unique", ann.Unique,
		)), nil
	case *field.GeneratedValue:
		return jen.Op("&").Qual(fieldPkg, "GeneratedValue").Values(fields("Strategy", ann.Strategy)), nil
	case *schema.CommentAnnotation:
		return jen.Qual(schemaPkg, "Comment").Call(jen.Lit(ann.Text)), nil
	case *edge.ManyToOne:
		return jen.Op("&").Qual(edgePkg, "ManyToOne").Values(fields(
			"TargetEntity", ann.TargetEntity,
			"InversedBy", ann.InversedBy,
		)), nil
	case *edge.OneToOne:
		return jen.Op("&").Qual(edgePkg, "OneToOne").Values(fields(
			"TargetEntity", ann.TargetEntity,
			"MappedBy", ann.MappedBy,
			"InversedBy", ann.InversedBy,
		)), nil
	case *edge.ManyToMany:
		return jen.Op("&").Qual(edgePkg, "ManyToMany").Values(fields(
			"TargetEntity", ann.TargetEntity,
			"MappedBy", ann.MappedBy,
			"InversedBy", ann.InversedBy,
			"JoinTable", ann.JoinTable,
		)), nil
	case *edge.OneToMany:
		return jen.Op("&").Qual(edgePkg, "OneToMany").Values(fields(
			"TargetEntity", ann.TargetEntity,
			"MappedBy", ann.MappedBy,
		)), nil
	default:
		return nil, fmt.Errorf("no literal for annotation %s", a.Tag)
	}
}

// fields builds a literal dict from name/value pairs, skipping zero values.
func fields(kv ...any) jen.Dict {
	d := jen.Dict{}
	for i := 0; i < len(kv); i += 2 {
		switch v := kv[i+1].(type) {
		case string:
			if v == "" {
				continue
			}
		case int:
			if v == 0 {
				continue
			}
		case bool:
			if !v {
				continue
			}
		}
		d[jen.Id(kv[i].(string))] = jen.Lit(kv[i+1])
	}
	return d
}

// Package gen generates Go source that registers descriptor sets
// statically, so programs can skip extraction at startup.
//
// For every entity in an export.Snapshot the generator writes one file
// holding a <Entity>Descriptors function built from property.MustNew calls
// with typed annotation literals. A descriptors.go file ties them together:
//
//	func Descriptors() map[string]map[string]*property.Descriptor
//
// Files are rendered with jennifer and formatted with goimports, in
// parallel.
//
// # Error Handling
//
//   - GenerationError: rendering, formatting or writing a file failed
//   - entityreader.ConfigError: invalid generator options
//
// Example:
//
//	g, err := gen.New(snap, "./model", gen.WithPackage("model"))
//	if err != nil {
//	    return err
//	}
//	if err := g.Generate(ctx); err != nil {
//	    if gen.IsGenerationError(err) {
//	        // inspect the failing file
//	    }
//	    return err
//	}
package gen

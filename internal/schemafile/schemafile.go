// Package schemafile loads record schema declarations from CUE files.
//
// A schema file declares one or more record classes under the top-level
// "record" field:
//
//	package schemas
//
//	record: User: fields: {
//		name: {type: "string"}
//		age:  {type: "int", default: 18}
//		bio:  {type: "string", nullable: true}
//	}
//
// "type" is a single type name or a list of names (a union); omitting it
// leaves the field unconstrained. "nullable: true" additionally admits
// null. "default" supplies the value used when construction omits the
// field and is validated against the constraint at load time.
package schemafile

import (
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"

	"github.com/objbase/objbase/record"
)

// LoadMode controls how errors are handled during schema loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// Error code constants for schema loading.
const (
	ErrCodeGeneric        = "S001" // Generic/unknown error
	ErrCodeNotFound       = "S002" // Path not found
	ErrCodeNoFiles        = "S003" // No CUE files found
	ErrCodeLoadFailed     = "S004" // CUE load failed
	ErrCodeBuildFailed    = "S005" // CUE build failed
	ErrCodeMissingFields  = "S006" // Record declares no fields
	ErrCodeInvalidType    = "S007" // Unknown type name in constraint
	ErrCodeInvalidDefault = "S008" // Default violates the constraint
)

// LoadError is an error that occurred during schema loading, with a CUE
// source position when one is available.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadDir loads every record schema declared in the CUE files under dir.
// The result maps record class names to their schemas. With
// LoadModeFailFast the first error aborts the load; with LoadModeCollectAll
// every error is gathered and valid schemas are still returned.
func LoadDir(dir string, mode LoadMode) (map[string]*record.Schema, []error) {
	var errs []error

	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("schemas directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing schemas directory: %v", err)}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	cueFiles, err := findCUEFiles(dir)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("error scanning directory: %v", err)}}
	}
	if len(cueFiles) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}}
	}

	ctx := cuecontext.New()
	instances := load.Instances([]string{"."}, &load.Config{Dir: dir})
	if len(instances) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}}
	}

	schemas := make(map[string]*record.Schema)

	recordsVal := value.LookupPath(cue.ParsePath("record"))
	if !recordsVal.Exists() {
		return schemas, []error{&LoadError{Code: ErrCodeGeneric, Message: "no record declarations found"}}
	}

	iter, iterErr := recordsVal.Fields()
	if iterErr != nil {
		return schemas, []error{&LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("iterating records: %v", iterErr)}}
	}
	for iter.Next() {
		name := iter.Label()
		schema, compileErrs := CompileSchema(iter.Value(), mode)
		if len(compileErrs) > 0 {
			for _, ce := range compileErrs {
				errs = append(errs, ce)
			}
			if mode == LoadModeFailFast {
				return schemas, errs
			}
			continue
		}
		schemas[name] = schema
	}

	return schemas, errs
}

// CompileSchema parses one record declaration (the value of record.<Name>)
// into a record.Schema.
func CompileSchema(v cue.Value, mode LoadMode) (*record.Schema, []error) {
	var errs []error

	fieldsVal := v.LookupPath(cue.ParsePath("fields"))
	if !fieldsVal.Exists() {
		return nil, []error{&LoadError{
			Code:    ErrCodeMissingFields,
			Message: "record declares no fields",
			Pos:     v.Pos(),
		}}
	}

	schema := record.NewSchema()

	iter, iterErr := fieldsVal.Fields()
	if iterErr != nil {
		return nil, []error{&LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("iterating fields: %v", iterErr), Pos: fieldsVal.Pos()}}
	}
	for iter.Next() {
		name := iter.Label()
		if err := compileField(schema, name, iter.Value()); err != nil {
			errs = append(errs, err)
			if mode == LoadModeFailFast {
				return nil, errs
			}
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return schema, nil
}

// compileField declares one field on the schema from its CUE description.
func compileField(schema *record.Schema, name string, v cue.Value) error {
	constraint, err := compileConstraint(v)
	if err != nil {
		return err
	}

	var opts []record.DeclOption
	defVal := v.LookupPath(cue.ParsePath("default"))
	if defVal.Exists() {
		var def any
		if decErr := defVal.Decode(&def); decErr != nil {
			return &LoadError{
				Code:    ErrCodeInvalidDefault,
				Message: fmt.Sprintf("field %q: decoding default: %v", name, decErr),
				Pos:     defVal.Pos(),
			}
		}
		opts = append(opts, record.WithDefault(def))
	}

	if declErr := schema.Declare(name, constraint, opts...); declErr != nil {
		code := ErrCodeGeneric
		if record.IsTypeMismatch(declErr) {
			code = ErrCodeInvalidDefault
		}
		return &LoadError{
			Code:    code,
			Message: fmt.Sprintf("field %q: %v", name, declErr),
			Pos:     v.Pos(),
		}
	}
	return nil
}

// compileConstraint parses the type/nullable pair of a field declaration.
// "type" may be a single name or a list of names; absence means
// unconstrained.
func compileConstraint(v cue.Value) (record.Constraint, error) {
	var constraint record.Constraint

	typeVal := v.LookupPath(cue.ParsePath("type"))
	if typeVal.Exists() {
		if s, err := typeVal.String(); err == nil {
			t, ok := record.ParseType(s)
			if !ok {
				return nil, &LoadError{
					Code:    ErrCodeInvalidType,
					Message: fmt.Sprintf("unknown type %q", s),
					Pos:     typeVal.Pos(),
				}
			}
			constraint = append(constraint, t)
		} else {
			listIter, listErr := typeVal.List()
			if listErr != nil {
				return nil, &LoadError{
					Code:    ErrCodeInvalidType,
					Message: fmt.Sprintf("type must be a name or list of names: %v", listErr),
					Pos:     typeVal.Pos(),
				}
			}
			for listIter.Next() {
				s, sErr := listIter.Value().String()
				if sErr != nil {
					return nil, &LoadError{
						Code:    ErrCodeInvalidType,
						Message: fmt.Sprintf("type entry must be a string: %v", sErr),
						Pos:     listIter.Value().Pos(),
					}
				}
				t, ok := record.ParseType(s)
				if !ok {
					return nil, &LoadError{
						Code:    ErrCodeInvalidType,
						Message: fmt.Sprintf("unknown type %q", s),
						Pos:     listIter.Value().Pos(),
					}
				}
				constraint = append(constraint, t)
			}
		}
	}

	nullVal := v.LookupPath(cue.ParsePath("nullable"))
	if nullVal.Exists() {
		nullable, err := nullVal.Bool()
		if err != nil {
			return nil, &LoadError{
				Code:    ErrCodeGeneric,
				Message: fmt.Sprintf("nullable must be a bool: %v", err),
				Pos:     nullVal.Pos(),
			}
		}
		if nullable {
			constraint = append(constraint, record.TypeNull)
		}
	}

	return constraint, nil
}

// findCUEFiles walks the directory and returns all .cue file paths.
func findCUEFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".cue" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

package orders

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies why an import was rejected.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindEmptyFile
	KindMissingColumns
)

func (k ErrorKind) String() string {
	switch k {
	case KindEmptyFile:
		return "empty_file"
	case KindMissingColumns:
		return "missing_columns"
	default:
		return "unknown"
	}
}

// ImportError is returned for every failed import. A failed import never changes stored state.
type ImportError struct {
	Kind    ErrorKind
	Missing []string
	Err     error
}

func (e *ImportError) Error() string {
	switch e.Kind {
	case KindEmptyFile:
		return "El archivo Excel está vacío o no tiene filas de datos."
	case KindMissingColumns:
		return fmt.Sprintf("Cabeceras incorrectas. Faltan las columnas: %s.", strings.Join(e.Missing, ", "))
	default:
		if e.Err != nil {
			return e.Err.Error()
		}
		return "Ocurrió un error desconocido al procesar el archivo."
	}
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// Is matches ImportErrors of the same kind, so errors.Is(err, ErrEmptyFile) works.
func (e *ImportError) Is(target error) bool {
	t, ok := target.(*ImportError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Err == nil && t.Missing == nil
}

var (
	ErrEmptyFile      = &ImportError{Kind: KindEmptyFile}
	ErrMissingColumns = &ImportError{Kind: KindMissingColumns}
)

// Wrap turns any decode failure into an ImportError, leaving ImportErrors untouched.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	var ie *ImportError
	if errors.As(err, &ie) {
		return err
	}
	return &ImportError{Kind: KindUnknown, Err: err}
}

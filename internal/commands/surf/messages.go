package surfcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	lintMessageType   = "surfdoc.surf.lint"
	fmtMessageType    = "surfdoc.surf.fmt"
	exportMessageType = "surfdoc.surf.export"
)

// LintCommand parses and validates a single SurfDoc file, reporting every
// diagnostic the pipeline produces. Findings print as
// "path:line:col severity code message", one per line.
type LintCommand struct {
	// Path selects the SurfDoc file to lint.
	Path string `json:"path"`
}

// Type implements command.Message.
func (LintCommand) Type() string { return lintMessageType }

// Validate ensures a file path is present before handlers execute.
func (cmd LintCommand) Validate() error {
	err := validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("surfdoc.surf.lint.path_required", "path is required")
			}
			return nil
		})),
	)
	if err != nil {
		return err
	}
	return nil
}

// FmtCommand rewrites a SurfDoc file into canonical form, or reports the
// file without touching it when Check is set.
type FmtCommand struct {
	// Path selects the SurfDoc file to format.
	Path string `json:"path"`
	// Check reports non-canonical files instead of rewriting them.
	Check bool `json:"check,omitempty"`
}

// Type implements command.Message.
func (FmtCommand) Type() string { return fmtMessageType }

// Validate ensures a file path is present before handlers execute.
func (cmd FmtCommand) Validate() error {
	err := validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("surfdoc.surf.fmt.path_required", "path is required")
			}
			return nil
		})),
	)
	if err != nil {
		return err
	}
	return nil
}

// ExportCommand loads every SurfDoc document under Directory and writes the
// markdown degradation of each into OutDir, mirroring the source layout.
type ExportCommand struct {
	// Directory selects the filesystem path to load SurfDoc files from.
	Directory string `json:"directory"`
	// OutDir selects the destination root for the rendered markdown tree.
	OutDir string `json:"out_dir"`
}

// Type implements command.Message.
func (ExportCommand) Type() string { return exportMessageType }

// Validate ensures source and destination directories are present before handlers execute.
func (cmd ExportCommand) Validate() error {
	err := validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("surfdoc.surf.export.directory_required", "directory is required")
			}
			return nil
		})),
		validation.Field(&cmd.OutDir, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("surfdoc.surf.export.out_dir_required", "out dir is required")
			}
			return nil
		})),
	)
	if err != nil {
		return err
	}
	return nil
}

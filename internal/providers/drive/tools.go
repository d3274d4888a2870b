package drive

import "github.com/memstack/memdrive/internal/shared/types"

// getTools returns the list of available drive tools
func (p *Provider) getTools() []types.Tool {
	return []types.Tool{
		{
			ID:          "drive.mkdir",
			Name:        "Make Directory",
			Description: "Create a directory at a path",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Required: true, Description: "Directory path, absolute or relative"},
			},
			Returns: "object",
		},
		{
			ID:          "drive.rmdir",
			Name:        "Remove Directory",
			Description: "Remove a directory, recursively when asked",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Required: true, Description: "Directory path"},
				{Name: "recursive", Type: "boolean", Required: false, Description: "Remove a non-empty directory with everything inside"},
			},
			Returns: "object",
		},
		{
			ID:          "drive.cd",
			Name:        "Change Directory",
			Description: "Move the session to a directory",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Required: true, Description: "Target path; .. goes up, a unit prefix switches units"},
			},
			Returns: "object",
		},
		{
			ID:          "drive.pwd",
			Name:        "Working Directory",
			Description: "Report the session's current path",
			Returns:     "object",
		},
		{
			ID:          "drive.list",
			Name:        "List Directory",
			Description: "List subdirectories (sorted) and files (name order)",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Required: false, Description: "Directory path (default: current)"},
			},
			Returns: "object",
		},
		{
			ID:          "drive.tree",
			Name:        "Render Tree",
			Description: "Render a subtree with indentation",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Required: false, Description: "Subtree root (default: current)"},
			},
			Returns: "object",
		},
		{
			ID:          "drive.find",
			Name:        "Find Directory",
			Description: "Locate the first directory with a name in the current unit and list its subtree",
			Parameters: []types.Parameter{
				{Name: "name", Type: "string", Required: true, Description: "Directory name, case-insensitive"},
			},
			Returns: "object",
		},
		{
			ID:          "drive.touch",
			Name:        "Create File",
			Description: "Create a file, optionally with content",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Required: true, Description: "File path; the name needs an extension"},
				{Name: "content", Type: "string", Required: false, Description: "Initial content (default: empty)"},
			},
			Returns: "object",
		},
		{
			ID:          "drive.read",
			Name:        "Read File",
			Description: "Return a file's content",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Required: true, Description: "File path"},
			},
			Returns: "object",
		},
		{
			ID:          "drive.write",
			Name:        "Write File",
			Description: "Replace a file's content",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Required: true, Description: "File path"},
				{Name: "content", Type: "string", Required: true, Description: "New content"},
			},
			Returns: "object",
		},
		{
			ID:          "drive.rm",
			Name:        "Remove File",
			Description: "Delete a file",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Required: true, Description: "File path"},
			},
			Returns: "object",
		},
		{
			ID:          "drive.rename",
			Name:        "Rename",
			Description: "Rename a file or directory in place",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Required: true, Description: "Current path"},
				{Name: "name", Type: "string", Required: true, Description: "New name, same parent"},
			},
			Returns: "object",
		},
		{
			ID:          "drive.stat",
			Name:        "Stat",
			Description: "Describe a file (size, MIME type) or directory (child counts)",
			Parameters: []types.Parameter{
				{Name: "path", Type: "string", Required: true, Description: "File or directory path"},
			},
			Returns: "object",
		},
		{
			ID:          "drive.units",
			Name:        "List Units",
			Description: "Summarize every storage unit",
			Returns:     "object",
		},
		{
			ID:          "drive.use",
			Name:        "Select Unit",
			Description: "Switch the session to another unit's root",
			Parameters: []types.Parameter{
				{Name: "unit", Type: "string", Required: true, Description: "Unit letter, with or without the colon"},
			},
			Returns: "object",
		},
		{
			ID:          "drive.log",
			Name:        "Operation Log",
			Description: "Recorded operations, newest first",
			Returns:     "object",
		},
		{
			ID:          "drive.errors",
			Name:        "Error Log",
			Description: "Recorded failures, newest first",
			Returns:     "object",
		},
		{
			ID:          "drive.clearlog",
			Name:        "Clear Logs",
			Description: "Wipe both journals",
			Returns:     "object",
		},
	}
}

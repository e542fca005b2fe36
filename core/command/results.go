package command

// OpenImage opens an image with the operating system's default handler.
type OpenImage struct {
	Path string
}

func (c *OpenImage) CommandName() string {
	return "OpenImage"
}

// ExportResults writes the current results to a file.
// The format is chosen from the file extension.
type ExportResults struct {
	Path string
}

func (c *ExportResults) CommandName() string {
	return "ExportResults"
}

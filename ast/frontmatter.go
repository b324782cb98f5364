package ast

// FrontMatter holds the document metadata declared between the leading
// --- delimiters. Well-known keys are typed; everything else lands in
// Extra with its decoded value.
type FrontMatter struct {
	Title       string
	Type        string
	Status      string
	Author      string
	Description string
	Version     string
	Created     string
	Updated     string
	Tags        []string
	Extra       map[string]any
}

// IsZero reports whether no front matter was present or declared.
func (fm FrontMatter) IsZero() bool {
	return fm.Title == "" && fm.Type == "" && fm.Status == "" &&
		fm.Author == "" && fm.Description == "" && fm.Version == "" &&
		fm.Created == "" && fm.Updated == "" &&
		len(fm.Tags) == 0 && len(fm.Extra) == 0
}

package models

// Resource описывает файл, на который указывает путь запроса.
// Размер снимается в момент запроса и нигде не кешируется.
type Resource struct {
	Name    string
	Path    string
	Size    int64
}

package models

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	return validate.Struct(p)
}

// Apply copies the editable fields from another post.
func (p *Post) Apply(changes *Post) {
	p.Title = changes.Title
	p.Contents = changes.Contents
}

func (r *PostRequest) Validate() error {
	return validate.Struct(r)
}

// Post builds an unsaved post from the request.
func (r *PostRequest) Post() *Post {
	return &Post{Title: r.Title, Contents: r.Contents}
}

package social

type Repository struct{}

func NewRepository() *Repository {
	return &Repository{}
}

package repo

// TokenStore описывает абстракцию хранилища токена доступа к локальному API.
type TokenStore interface {
	Save(token string) error
	Load() (string, error)
}

package repository

import "context"

// Store bundles the repositories of one database backend.
type Store struct {
	Users  UserRepository
	Breeds BreedRepository
	Cats   CatRepository
	Votes  VoteRepository
	Tokens TokenRepository
}

// Init creates the tables of every repository, parents first.
func (s *Store) Init(ctx context.Context) error {
	for _, r := range []interface{ Init(context.Context) error }{s.Users, s.Breeds, s.Cats, s.Votes, s.Tokens} {
		if err := r.Init(ctx); err != nil {
			return err
		}
	}
	return nil
}

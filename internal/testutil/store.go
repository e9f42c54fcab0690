// Package testutil holds in-memory repositories that behave like the gorm
// ones closely enough for service and HTTP tests: copies in and out, unique
// keys on handle and email, and gorm sentinel errors.
package testutil

import (
	"context"
	"slices"
	"sync"
	"time"

	"recipe-hub/entities"
	"recipe-hub/pkg/recipe"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type row[T any] struct {
	val T
	seq int
}

type Store struct {
	mu  sync.Mutex
	seq int
	now func() time.Time
	err error

	users     map[uuid.UUID]row[entities.User]
	recipes   map[uuid.UUID]row[entities.Recipe]
	comments  map[uuid.UUID]row[entities.Comment]
	likes     map[uuid.UUID]map[uuid.UUID]int
	favorites map[uuid.UUID]map[uuid.UUID]int

	userWrites   int
	recipeWrites int
}

func NewStore() *Store {
	return &Store{
		now:       time.Now,
		users:     map[uuid.UUID]row[entities.User]{},
		recipes:   map[uuid.UUID]row[entities.Recipe]{},
		comments:  map[uuid.UUID]row[entities.Comment]{},
		likes:     map[uuid.UUID]map[uuid.UUID]int{},
		favorites: map[uuid.UUID]map[uuid.UUID]int{},
	}
}

// FailWith makes every later call return err; nil restores normal behaviour.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// UserWrites counts successful user updates.
func (s *Store) UserWrites() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userWrites
}

// RecipeWrites counts successful recipe updates.
func (s *Store) RecipeWrites() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recipeWrites
}

func (s *Store) Users() *UserRepository       { return &UserRepository{s} }
func (s *Store) Recipes() *RecipeRepository   { return &RecipeRepository{s} }
func (s *Store) Comments() *CommentRepository { return &CommentRepository{s} }

func (s *Store) next() int {
	s.seq++
	return s.seq
}

func byNewest[T any](rows []row[T]) []row[T] {
	slices.SortFunc(rows, func(a, b row[T]) int { return b.seq - a.seq })
	return rows
}

type UserRepository struct{ s *Store }

func (r *UserRepository) CreateUser(_ context.Context, user *entities.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if s.conflicts(user) {
		return gorm.ErrDuplicatedKey
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = s.now()
	user.UpdatedAt = user.CreatedAt
	s.users[user.ID] = row[entities.User]{val: *user, seq: s.next()}
	return nil
}

func (s *Store) conflicts(user *entities.User) bool {
	for id, u := range s.users {
		if id != user.ID && (u.val.Email == user.Email || u.val.Handle == user.Handle) {
			return true
		}
	}
	return false
}

func (r *UserRepository) find(match func(entities.User) bool) (*entities.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.users {
		if match(u.val) {
			user := u.val
			return &user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *UserRepository) GetUserByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	return r.find(func(u entities.User) bool { return u.ID == id })
}

func (r *UserRepository) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	return r.find(func(u entities.User) bool { return u.Email == email })
}

func (r *UserRepository) GetUserByHandle(_ context.Context, handle string) (*entities.User, error) {
	return r.find(func(u entities.User) bool { return u.Handle == handle })
}

func (r *UserRepository) UpdateUser(_ context.Context, user *entities.User) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	existing, ok := s.users[user.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if s.conflicts(user) {
		return gorm.ErrDuplicatedKey
	}
	user.UpdatedAt = s.now()
	existing.val.Handle = user.Handle
	existing.val.Name = user.Name
	existing.val.Email = user.Email
	existing.val.UpdatedAt = user.UpdatedAt
	s.users[user.ID] = existing
	s.userWrites++
	return nil
}

type RecipeRepository struct{ s *Store }

func (r *RecipeRepository) CreateRecipe(_ context.Context, rec *entities.Recipe) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	rec.CreatedAt = s.now()
	rec.UpdatedAt = rec.CreatedAt
	s.recipes[rec.ID] = row[entities.Recipe]{val: cloneRecipe(*rec), seq: s.next()}
	return nil
}

func cloneRecipe(r entities.Recipe) entities.Recipe {
	r.Ingredients = slices.Clone(r.Ingredients)
	r.Instructions = slices.Clone(r.Instructions)
	r.User = nil
	return r
}

func (r *RecipeRepository) GetRecipeByID(_ context.Context, id uuid.UUID) (*entities.Recipe, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	found, ok := s.recipes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	rec := cloneRecipe(found.val)
	return &rec, nil
}

func (r *RecipeRepository) collect(match func(entities.Recipe) bool) []row[entities.Recipe] {
	var rows []row[entities.Recipe]
	for _, rec := range r.s.recipes {
		if match(rec.val) {
			rows = append(rows, rec)
		}
	}
	return byNewest(rows)
}

func toPointers(rows []row[entities.Recipe]) []*entities.Recipe {
	out := make([]*entities.Recipe, 0, len(rows))
	for _, rec := range rows {
		v := cloneRecipe(rec.val)
		out = append(out, &v)
	}
	return out
}

func (r *RecipeRepository) GetRecipes(_ context.Context, filter recipe.RecipeFilter, page, limit int) ([]*entities.Recipe, int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, 0, s.err
	}
	rows := r.collect(func(rec entities.Recipe) bool {
		return filter.Category == "" || rec.Category == filter.Category
	})
	total := int64(len(rows))
	start := min((page-1)*limit, len(rows))
	end := min(start+limit, len(rows))
	return toPointers(rows[start:end]), total, nil
}

func (r *RecipeRepository) GetRecipesByUser(_ context.Context, userID uuid.UUID) ([]*entities.Recipe, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return toPointers(r.collect(func(rec entities.Recipe) bool { return rec.UserID == userID })), nil
}

func (r *RecipeRepository) GetFavoritesByUser(_ context.Context, userID uuid.UUID) ([]*entities.Recipe, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	var rows []row[entities.Recipe]
	for recipeID, members := range s.favorites {
		seq, ok := members[userID]
		if !ok {
			continue
		}
		if rec, ok := s.recipes[recipeID]; ok {
			rows = append(rows, row[entities.Recipe]{val: rec.val, seq: seq})
		}
	}
	return toPointers(byNewest(rows)), nil
}

func (r *RecipeRepository) UpdateRecipe(_ context.Context, rec *entities.Recipe) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	existing, ok := s.recipes[rec.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	rec.UpdatedAt = s.now()
	updated := cloneRecipe(*rec)
	updated.UserID = existing.val.UserID
	updated.CreatedAt = existing.val.CreatedAt
	s.recipes[rec.ID] = row[entities.Recipe]{val: updated, seq: existing.seq}
	s.recipeWrites++
	return nil
}

func (r *RecipeRepository) DeleteRecipe(_ context.Context, id uuid.UUID) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.recipes[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	for cid, c := range s.comments {
		if c.val.RecipeID == id {
			delete(s.comments, cid)
		}
	}
	delete(s.likes, id)
	delete(s.favorites, id)
	delete(s.recipes, id)
	return nil
}

func (s *Store) add(set map[uuid.UUID]map[uuid.UUID]int, recipeID, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	members, ok := set[recipeID]
	if !ok {
		members = map[uuid.UUID]int{}
		set[recipeID] = members
	}
	if _, ok := members[userID]; !ok {
		members[userID] = s.next()
	}
	return nil
}

func (s *Store) remove(set map[uuid.UUID]map[uuid.UUID]int, recipeID, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	delete(set[recipeID], userID)
	return nil
}

func (s *Store) count(set map[uuid.UUID]map[uuid.UUID]int, recipeID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	return int64(len(set[recipeID])), nil
}

func (r *RecipeRepository) AddLike(_ context.Context, recipeID, userID uuid.UUID) error {
	return r.s.add(r.s.likes, recipeID, userID)
}

func (r *RecipeRepository) RemoveLike(_ context.Context, recipeID, userID uuid.UUID) error {
	return r.s.remove(r.s.likes, recipeID, userID)
}

func (r *RecipeRepository) CountLikes(_ context.Context, recipeID uuid.UUID) (int64, error) {
	return r.s.count(r.s.likes, recipeID)
}

func (r *RecipeRepository) AddFavorite(_ context.Context, recipeID, userID uuid.UUID) error {
	return r.s.add(r.s.favorites, recipeID, userID)
}

func (r *RecipeRepository) RemoveFavorite(_ context.Context, recipeID, userID uuid.UUID) error {
	return r.s.remove(r.s.favorites, recipeID, userID)
}

func (r *RecipeRepository) CountFavorites(_ context.Context, recipeID uuid.UUID) (int64, error) {
	return r.s.count(r.s.favorites, recipeID)
}

type CommentRepository struct{ s *Store }

func (r *CommentRepository) CreateComment(_ context.Context, c *entities.Comment) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = s.now()
	c.UpdatedAt = c.CreatedAt
	stored := *c
	stored.User = nil
	stored.Recipe = nil
	s.comments[c.ID] = row[entities.Comment]{val: stored, seq: s.next()}
	return nil
}

func (r *CommentRepository) GetCommentByID(_ context.Context, id uuid.UUID) (*entities.Comment, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	found, ok := s.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	c := found.val
	return &c, nil
}

// GetCommentsByRecipe attaches each author the way the gorm preload does.
func (r *CommentRepository) GetCommentsByRecipe(_ context.Context, recipeID uuid.UUID) ([]*entities.Comment, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	var rows []row[entities.Comment]
	for _, c := range s.comments {
		if c.val.RecipeID == recipeID {
			rows = append(rows, c)
		}
	}
	out := make([]*entities.Comment, 0, len(rows))
	for _, c := range byNewest(rows) {
		v := c.val
		if u, ok := s.users[v.UserID]; ok {
			v.User = &entities.User{ID: u.val.ID, Handle: u.val.Handle}
		}
		out = append(out, &v)
	}
	return out, nil
}

func (r *CommentRepository) DeleteComment(_ context.Context, id uuid.UUID) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.comments[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.comments, id)
	return nil
}

// CommentCount returns the number of stored comments on recipeID.
func (s *Store) CommentCount(recipeID uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.comments {
		if c.val.RecipeID == recipeID {
			n++
		}
	}
	return n
}

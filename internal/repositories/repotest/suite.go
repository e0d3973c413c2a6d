// Package repotest общий набор тестов для реализаций репозитория ссылок.
package repotest

import (
	"context"
	"fmt"
	"sync"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/linkqr/internal/models"
	"github.com/fsdevblog/linkqr/internal/repositories"
)

// LinkRepository контракт, который проверяет набор.
type LinkRepository interface {
	Create(ctx context.Context, link *models.Link) (*models.Link, error)
	GetByShortID(ctx context.Context, shortID string) (*models.Link, error)
	GetByShortURL(ctx context.Context, shortURL string) (*models.Link, error)
}

// LinkRepoSuite встраивается в suite конкретного бэкенда.
// NewRepo вызывается перед каждым тестом и должен возвращать пустой репозиторий.
type LinkRepoSuite struct {
	suite.Suite
	NewRepo func() LinkRepository
	repo    LinkRepository
}

const baseURL = "http://localhost:5000"

func (s *LinkRepoSuite) SetupTest() {
	s.Require().NotNil(s.NewRepo, "NewRepo must be set")
	s.repo = s.NewRepo()
}

func newLink(shortID string) *models.Link {
	return &models.Link{
		ShortID:     shortID,
		ShortURL:    fmt.Sprintf("%s/%s", baseURL, shortID),
		OriginalURL: gofakeit.URL(),
	}
}

func (s *LinkRepoSuite) TestCreateAndGet() {
	ctx := context.Background()
	link := newLink("abcdefg")

	created, err := s.repo.Create(ctx, link)
	s.Require().NoError(err)
	s.Equal(link.ShortID, created.ShortID)
	s.False(created.CreatedAt.IsZero())

	byID, err := s.repo.GetByShortID(ctx, link.ShortID)
	s.Require().NoError(err)
	s.Equal(link.OriginalURL, byID.OriginalURL)
	s.Equal(link.ShortURL, byID.ShortURL)

	byURL, err := s.repo.GetByShortURL(ctx, link.ShortURL)
	s.Require().NoError(err)
	s.Equal(link.ShortID, byURL.ShortID)
}

func (s *LinkRepoSuite) TestNotFound() {
	ctx := context.Background()

	_, err := s.repo.GetByShortID(ctx, "missing")
	s.Require().ErrorIs(err, repositories.ErrNotFound)

	_, err = s.repo.GetByShortURL(ctx, baseURL+"/missing")
	s.Require().ErrorIs(err, repositories.ErrNotFound)
}

func (s *LinkRepoSuite) TestDuplicateShortID() {
	ctx := context.Background()
	first := newLink("dup0001")
	_, err := s.repo.Create(ctx, first)
	s.Require().NoError(err)

	second := newLink("dup0001")
	second.ShortURL = "http://other.host/dup0001"
	_, err = s.repo.Create(ctx, second)
	s.Require().ErrorIs(err, repositories.ErrDuplicateKey)

	// первая запись не перезаписана
	got, err := s.repo.GetByShortID(ctx, first.ShortID)
	s.Require().NoError(err)
	s.Equal(first.OriginalURL, got.OriginalURL)
}

func (s *LinkRepoSuite) TestDuplicateShortURL() {
	ctx := context.Background()
	_, err := s.repo.Create(ctx, newLink("dup0002"))
	s.Require().NoError(err)

	other := newLink("dup0003")
	other.ShortURL = baseURL + "/dup0002"
	_, err = s.repo.Create(ctx, other)
	s.Require().ErrorIs(err, repositories.ErrDuplicateKey)
}

func (s *LinkRepoSuite) TestSameOriginalURL() {
	ctx := context.Background()
	a := newLink("same001")
	b := newLink("same002")
	b.OriginalURL = a.OriginalURL

	_, err := s.repo.Create(ctx, a)
	s.Require().NoError(err)
	_, err = s.repo.Create(ctx, b)
	s.Require().NoError(err)
}

func (s *LinkRepoSuite) TestConcurrentCreate() {
	ctx := context.Background()
	const workers = 8

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = s.repo.Create(ctx, newLink("race001"))
		}()
	}
	wg.Wait()

	var created int
	for _, err := range errs {
		if err == nil {
			created++
			continue
		}
		s.Require().ErrorIs(err, repositories.ErrDuplicateKey)
	}
	s.Equal(1, created)
}

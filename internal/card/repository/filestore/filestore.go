// Package filestore keeps rendered cards as SVG files in one directory.
// A directory belongs to a single login; the login passed to GetCard and
// FindCards is reported back but not used to locate files.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/noelukwa/devcard/internal/card/models"
	"github.com/noelukwa/devcard/internal/card/render"
	"github.com/noelukwa/devcard/internal/card/repository"
	"github.com/rs/zerolog/log"
)

var ErrNotDir = errors.New("given root is not a directory")

var variants = []models.Variant{models.NeofetchVariant, models.CompactVariant, models.ExtendedVariant}

type FileStore struct {
	Root  string
	Login string
}

func New(root, login string) (*FileStore, error) {
	info, err := os.Stat(root)
	if err == nil {
		if !info.IsDir() {
			return nil, fmt.Errorf("%s: %w", root, ErrNotDir)
		}
		return &FileStore{Root: root, Login: login}, nil
	}

	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat output dir: %w", err)
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}
	return &FileStore{Root: root, Login: login}, nil
}

// SaveCards writes every card to a temporary file first and renames them
// into place only once all writes succeeded. If a rename fails, the cards
// already renamed are rolled back to the files they replaced.
func (s *FileStore) SaveCards(ctx context.Context, cards []models.Card) error {
	temps := make([]string, 0, len(cards))
	defer func() {
		for _, tmp := range temps {
			os.Remove(tmp)
		}
	}()

	for _, card := range cards {
		if err := ctx.Err(); err != nil {
			return err
		}
		f, err := os.CreateTemp(s.Root, ".card-*.svg")
		if err != nil {
			return fmt.Errorf("create temp file: %w", err)
		}
		temps = append(temps, f.Name())

		_, err = f.Write(card.SVG)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("write %s card: %w", card.Theme, err)
		}
	}

	var applied []placed
	for i, card := range cards {
		target := filepath.Join(s.Root, render.FileName(card.Theme, card.Variant))
		p, err := s.place(temps[i], target)
		if err != nil {
			rollback(applied)
			return err
		}
		applied = append(applied, p)
	}
	temps = temps[:0]

	for i, p := range applied {
		if p.backup != "" {
			os.Remove(p.backup)
		}
		log.Info().Str("path", p.target).Int("bytes", len(cards[i].SVG)).Msg("card written")
	}
	return nil
}

// placed is a card renamed into target. backup links the file target held
// before, if any.
type placed struct {
	target string
	backup string
}

func (s *FileStore) place(tmp, target string) (placed, error) {
	p := placed{target: target}
	if err := os.Chmod(tmp, 0o644); err != nil {
		return p, fmt.Errorf("chmod %s: %w", target, err)
	}

	if _, err := os.Lstat(target); err == nil {
		p.backup = filepath.Join(s.Root, ".prev-"+uuid.NewString()+"-"+filepath.Base(target))
		if err := os.Link(target, p.backup); err != nil {
			return p, fmt.Errorf("back up %s: %w", target, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return p, fmt.Errorf("stat %s: %w", target, err)
	}

	if err := os.Rename(tmp, target); err != nil {
		if p.backup != "" {
			os.Remove(p.backup)
		}
		return p, fmt.Errorf("rename %s: %w", target, err)
	}
	return p, nil
}

// rollback puts back what every placed card replaced, newest first.
func rollback(applied []placed) {
	for i := len(applied) - 1; i >= 0; i-- {
		p := applied[i]
		var err error
		if p.backup != "" {
			err = os.Rename(p.backup, p.target)
		} else {
			err = os.Remove(p.target)
		}
		if err != nil {
			log.Error().Err(err).Str("path", p.target).Msg("failed to roll back card")
		}
	}
}

func (s *FileStore) GetCard(ctx context.Context, login string, theme models.Theme, variant models.Variant) (*models.Card, error) {
	path := filepath.Join(s.Root, render.FileName(theme, variant))
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, repository.ErrCardNotFound
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	return &models.Card{
		ID:         uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+path)),
		Login:      login,
		Theme:      theme,
		Variant:    variant,
		SVG:        content,
		RenderedAt: info.ModTime().UTC(),
	}, nil
}

func (s *FileStore) FindCards(ctx context.Context, filter models.CardFilter, pag repository.Pagination) (repository.Paginated[models.Card], error) {
	login := s.Login
	if filter.Login != nil {
		login = *filter.Login
	}

	var all []models.Card
	for _, variant := range variants {
		if filter.Variant != nil && *filter.Variant != variant {
			continue
		}
		for _, theme := range models.Themes {
			if filter.Theme != nil && *filter.Theme != theme {
				continue
			}
			card, err := s.GetCard(ctx, login, theme, variant)
			if errors.Is(err, repository.ErrCardNotFound) {
				continue
			}
			if err != nil {
				return repository.Paginated[models.Card]{}, err
			}
			all = append(all, *card)
		}
	}

	page := repository.Paginated[models.Card]{
		Data:       []models.Card{},
		TotalCount: int64(len(all)),
		Page:       pag.Page,
		PerPage:    pag.PerPage,
	}
	start := pag.Offset()
	if start >= len(all) {
		return page, nil
	}
	end := len(all)
	if pag.PerPage > 0 && start+pag.PerPage < end {
		end = start + pag.PerPage
	}
	page.Data = all[start:end]
	return page, nil
}

package library

import (
	"fmt"
	"strings"
	"time"
)

// AddMovie inserts a movie with its profiles.
// Sets ID and AddedAt on the struct.
func (s *Store) AddMovie(m *Movie) error {
	now := time.Now()
	return s.inTx(func(q querier) error {
		result, err := q.Exec(`INSERT INTO movies (title, year, added_at) VALUES (?, ?, ?)`,
			m.Title, m.Year, now)
		if err != nil {
			return fmt.Errorf("insert movie: %w", mapSQLiteError(err))
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("get last insert id: %w", err)
		}
		if err := setProfiles(q, id, m.Profiles); err != nil {
			return err
		}
		m.ID = id
		m.AddedAt = now
		return nil
	})
}

// SetProfiles replaces the quality profiles assigned to a movie.
func (s *Store) SetProfiles(movieID int64, profiles []string) error {
	return s.inTx(func(q querier) error {
		if _, err := getMovie(q, movieID); err != nil {
			return err
		}
		if _, err := q.Exec(`DELETE FROM movie_profiles WHERE movie_id = ?`, movieID); err != nil {
			return fmt.Errorf("clear profiles: %w", err)
		}
		return setProfiles(q, movieID, profiles)
	})
}

func setProfiles(q querier, movieID int64, profiles []string) error {
	for i, p := range profiles {
		if _, err := q.Exec(`INSERT INTO movie_profiles (movie_id, profile, position) VALUES (?, ?, ?)`,
			movieID, p, i); err != nil {
			return fmt.Errorf("insert profile %q: %w", p, mapSQLiteError(err))
		}
	}
	return nil
}

func getMovie(q querier, id int64) (*Movie, error) {
	m := &Movie{}
	err := q.QueryRow(`SELECT id, title, year, added_at FROM movies WHERE id = ?`, id).
		Scan(&m.ID, &m.Title, &m.Year, &m.AddedAt)
	if err != nil {
		return nil, fmt.Errorf("get movie %d: %w", id, mapSQLiteError(err))
	}
	if m.Profiles, err = loadProfiles(q, m.ID); err != nil {
		return nil, err
	}
	return m, nil
}

// GetMovie retrieves a movie and its profiles by ID.
// Returns ErrNotFound if the movie does not exist.
func (s *Store) GetMovie(id int64) (*Movie, error) { return getMovie(s.db, id) }

// FindMovie looks a movie up by title and year. Title comparison ignores case.
// Returns ErrNotFound if no movie matches.
func (s *Store) FindMovie(title string, year int) (*Movie, error) {
	var id int64
	err := s.db.QueryRow(`SELECT id FROM movies WHERE lower(title) = ? AND year = ?`,
		strings.ToLower(title), year).Scan(&id)
	if err != nil {
		return nil, fmt.Errorf("find movie %q (%d): %w", title, year, mapSQLiteError(err))
	}
	return getMovie(s.db, id)
}

// ListMovies returns every movie ordered by title.
func (s *Store) ListMovies() ([]*Movie, error) {
	rows, err := s.db.Query(`SELECT id, title, year, added_at FROM movies ORDER BY title, year`)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	var movies []*Movie
	for rows.Next() {
		m := &Movie{}
		if err := rows.Scan(&m.ID, &m.Title, &m.Year, &m.AddedAt); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("iterate movies: %w", err)
	}
	_ = rows.Close()

	// Profiles are loaded after the cursor is closed; an in-memory database
	// runs on a single connection.
	for _, m := range movies {
		if m.Profiles, err = loadProfiles(s.db, m.ID); err != nil {
			return nil, err
		}
	}
	return movies, nil
}

func loadProfiles(q querier, movieID int64) ([]string, error) {
	rows, err := q.Query(`SELECT profile FROM movie_profiles WHERE movie_id = ? ORDER BY position`, movieID)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var profiles []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

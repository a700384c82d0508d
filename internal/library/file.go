package library

import (
	"fmt"
	"time"
)

// AddFile inserts a new file into the database.
// Sets ID and AddedAt on the struct.
func (s *Store) AddFile(f *File) error {
	now := time.Now()
	result, err := s.db.Exec(`
		INSERT INTO movie_files (movie_id, path, quality, release_name, size_bytes, added_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		f.MovieID, f.Path, f.Quality, f.ReleaseName, f.SizeBytes, now,
	)
	if err != nil {
		return fmt.Errorf("insert file: %w", mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	f.ID = id
	f.AddedAt = now
	return nil
}

// GetFile retrieves a file by ID.
// Returns ErrNotFound if the file does not exist.
func (s *Store) GetFile(id int64) (*File, error) {
	f := &File{}
	err := s.db.QueryRow(`
		SELECT id, movie_id, path, quality, release_name, size_bytes, added_at
		FROM movie_files WHERE id = ?`, id,
	).Scan(&f.ID, &f.MovieID, &f.Path, &f.Quality, &f.ReleaseName, &f.SizeBytes, &f.AddedAt)
	if err != nil {
		return nil, fmt.Errorf("get file %d: %w", id, mapSQLiteError(err))
	}
	return f, nil
}

// ListFiles returns the files of a movie ordered by ID. Each call returns a
// fresh slice the caller may keep.
func (s *Store) ListFiles(movieID int64) ([]*File, error) {
	rows, err := s.db.Query(`
		SELECT id, movie_id, path, quality, release_name, size_bytes, added_at
		FROM movie_files WHERE movie_id = ? ORDER BY id`, movieID)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var files []*File
	for rows.Next() {
		f := &File{}
		if err := rows.Scan(&f.ID, &f.MovieID, &f.Path, &f.Quality, &f.ReleaseName, &f.SizeBytes, &f.AddedAt); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate files: %w", err)
	}
	return files, nil
}

// DeleteFile removes a file record.
// Returns ErrNotFound if the file does not exist.
func (s *Store) DeleteFile(id int64) error {
	result, err := s.db.Exec(`DELETE FROM movie_files WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete file %d: %w", id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("delete file %d: %w", id, ErrNotFound)
	}
	return nil
}

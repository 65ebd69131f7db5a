package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rcliao/certimatch/internal/domain"
)

const dataDirName = ".certimatch"

type FileStorage struct {
	basePath string
	mu       sync.RWMutex
}

type Config struct {
	CurrentProjectID *string `json:"currentProjectId,omitempty"`
}

func NewFileStorage(basePath string) (*FileStorage, error) {
	fs := &FileStorage{
		basePath: basePath,
	}

	err := fs.initialize()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	return fs, nil
}

func (fs *FileStorage) initialize() error {
	if err := os.MkdirAll(fs.projectsDir(), 0755); err != nil {
		return err
	}

	configPath := fs.configPath()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return fs.saveJSON(configPath, Config{})
	}

	return nil
}

func (fs *FileStorage) configPath() string {
	return filepath.Join(fs.basePath, dataDirName, "config.json")
}

func (fs *FileStorage) projectsDir() string {
	return filepath.Join(fs.basePath, dataDirName, "projects")
}

func (fs *FileStorage) projectDir(projectID string) string {
	return filepath.Join(fs.projectsDir(), projectID)
}

func (fs *FileStorage) projectPath(projectID string) string {
	return filepath.Join(fs.projectDir(projectID), "project.json")
}

func (fs *FileStorage) filesPath(projectID string) string {
	return filepath.Join(fs.projectDir(projectID), "files.json")
}

func (fs *FileStorage) remediationPath(projectID string, market domain.Market) string {
	return filepath.Join(fs.projectDir(projectID), "remediation", string(market)+".json")
}

func (fs *FileStorage) ensureProjectDir(projectID string) error {
	return os.MkdirAll(filepath.Join(fs.projectDir(projectID), "remediation"), 0755)
}

// saveJSON writes through a temp file and renames it into place.
func (fs *FileStorage) saveJSON(path string, data interface{}) error {
	tempPath := path + ".tmp"

	file, err := os.Create(tempPath)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		file.Close()
		os.Remove(tempPath)
		return err
	}
	if err := file.Close(); err != nil {
		os.Remove(tempPath)
		return err
	}

	return os.Rename(tempPath, path)
}

func (fs *FileStorage) loadJSON(path string, target interface{}) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return json.NewDecoder(file).Decode(target)
}

func (fs *FileStorage) projectExists(id string) bool {
	_, err := os.Stat(fs.projectPath(id))
	return err == nil
}

// Project Repository Implementation
func (fs *FileStorage) CreateProject(project *domain.Project) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if fs.projectExists(project.ID) {
		return fmt.Errorf("project with ID %s already exists", project.ID)
	}
	if err := fs.ensureProjectDir(project.ID); err != nil {
		return err
	}

	return fs.saveJSON(fs.projectPath(project.ID), project)
}

func (fs *FileStorage) GetProject(id string) (*domain.Project, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	return fs.getProjectUnlocked(id)
}

func (fs *FileStorage) getProjectUnlocked(id string) (*domain.Project, error) {
	var project domain.Project
	err := fs.loadJSON(fs.projectPath(id), &project)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("project with ID %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	return &project, nil
}

// ListProjects returns projects in creation order.
func (fs *FileStorage) ListProjects() ([]*domain.Project, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	entries, err := os.ReadDir(fs.projectsDir())
	if err != nil {
		return nil, err
	}

	projects := make([]*domain.Project, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		var project domain.Project
		if err := fs.loadJSON(fs.projectPath(entry.Name()), &project); err == nil {
			projects = append(projects, &project)
		}
	}

	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].CreatedAt.Before(projects[j].CreatedAt)
	})
	return projects, nil
}

func (fs *FileStorage) SetCurrentProject(id string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if !fs.projectExists(id) {
		return fmt.Errorf("project with ID %s: %w", id, domain.ErrNotFound)
	}

	return fs.saveJSON(fs.configPath(), Config{CurrentProjectID: &id})
}

func (fs *FileStorage) GetCurrentProject() (*domain.Project, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	var config Config
	if err := fs.loadJSON(fs.configPath(), &config); err != nil {
		return nil, err
	}

	if config.CurrentProjectID == nil {
		return nil, fmt.Errorf("no current project set: %w", domain.ErrNotFound)
	}

	return fs.getProjectUnlocked(*config.CurrentProjectID)
}

// File Repository Implementation
func (fs *FileStorage) AddFile(file *domain.UploadedFile) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if !fs.projectExists(file.ProjectID) {
		return fmt.Errorf("project with ID %s: %w", file.ProjectID, domain.ErrNotFound)
	}

	files, err := fs.loadFiles(file.ProjectID)
	if err != nil {
		return err
	}
	for _, f := range files {
		if f.ID == file.ID {
			return fmt.Errorf("file with ID %s already exists", file.ID)
		}
	}

	return fs.saveJSON(fs.filesPath(file.ProjectID), append(files, file))
}

func (fs *FileStorage) ListFiles(projectID string) ([]*domain.UploadedFile, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	return fs.loadFiles(projectID)
}

func (fs *FileStorage) RemoveFile(projectID, fileID string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	files, err := fs.loadFiles(projectID)
	if err != nil {
		return err
	}
	for i, f := range files {
		if f.ID == fileID {
			return fs.saveJSON(fs.filesPath(projectID), append(files[:i:i], files[i+1:]...))
		}
	}

	return fmt.Errorf("file with ID %s: %w", fileID, domain.ErrNotFound)
}

func (fs *FileStorage) loadFiles(projectID string) ([]*domain.UploadedFile, error) {
	var files []*domain.UploadedFile
	err := fs.loadJSON(fs.filesPath(projectID), &files)
	if errors.Is(err, os.ErrNotExist) {
		return make([]*domain.UploadedFile, 0), nil
	}
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Remediation Repository Implementation
func (fs *FileStorage) SaveRemediation(projectID string, market domain.Market, items []domain.RemediationItem) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if !fs.projectExists(projectID) {
		return fmt.Errorf("project with ID %s: %w", projectID, domain.ErrNotFound)
	}
	if err := fs.ensureProjectDir(projectID); err != nil {
		return err
	}
	if items == nil {
		items = []domain.RemediationItem{}
	}

	return fs.saveJSON(fs.remediationPath(projectID, market), items)
}

func (fs *FileStorage) ListRemediation(projectID string, market domain.Market) ([]domain.RemediationItem, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	var items []domain.RemediationItem
	err := fs.loadJSON(fs.remediationPath(projectID, market), &items)
	if errors.Is(err, os.ErrNotExist) {
		return make([]domain.RemediationItem, 0), nil
	}
	if err != nil {
		return nil, err
	}
	return items, nil
}

package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ameer-511/ai-cv-analysis/internal/models"
)

type fakeCVRepo struct {
	mu  sync.Mutex
	cvs map[uuid.UUID]*models.CV
}

func newFakeCVRepo() *fakeCVRepo {
	return &fakeCVRepo{cvs: map[uuid.UUID]*models.CV{}}
}

func (r *fakeCVRepo) Create(cv *models.CV) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cvs[cv.ID] = cv
	return nil
}

func (r *fakeCVRepo) FindByID(id uuid.UUID) (*models.CV, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cv, ok := r.cvs[id]
	if !ok {
		return nil, fmt.Errorf("CV not found")
	}
	copied := *cv
	return &copied, nil
}

func (r *fakeCVRepo) FindAll(limit int) ([]models.CV, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.CV
	for _, cv := range r.cvs {
		out = append(out, *cv)
	}
	return out, nil
}

func (r *fakeCVRepo) UpdateStatus(id uuid.UUID, status models.AnalysisStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cv, ok := r.cvs[id]
	if !ok {
		return fmt.Errorf("CV not found")
	}
	cv.Status = status
	return nil
}

func (r *fakeCVRepo) UpdateError(id uuid.UUID, errorMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cv, ok := r.cvs[id]
	if !ok {
		return fmt.Errorf("CV not found")
	}
	cv.Status = models.StatusFailed
	cv.ErrorMessage = &errorMsg
	return nil
}

func (r *fakeCVRepo) FindPendingJobs(limit int) ([]models.CV, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.CV
	for _, cv := range r.cvs {
		if cv.Status == models.StatusQueued {
			out = append(out, *cv)
		}
	}
	return out, nil
}

type fakeStorage struct {
	files map[string][]byte
}

func (s *fakeStorage) SaveFile(file *multipart.FileHeader) (string, string, error) {
	return "", "", fmt.Errorf("not implemented")
}

func (s *fakeStorage) ReadFile(filePath string) ([]byte, error) {
	data, ok := s.files[filePath]
	if !ok {
		return nil, fmt.Errorf("failed to read file: no such file")
	}
	return data, nil
}

func (s *fakeStorage) GetFilePath(filename string) string { return filename }
func (s *fakeStorage) DeleteFile(filename string) error   { return nil }
func (s *fakeStorage) EnsureUploadDir() error             { return nil }

func TestProcessCV_HappyPath(t *testing.T) {
	cvRepo := newFakeCVRepo()
	analysisRepo := &fakeAnalysisRepo{}
	storage := &fakeStorage{files: map[string][]byte{
		"/uploads/cv_1.txt": []byte("Jane Doe, Go developer"),
	}}
	client := &fakeModelClient{reply: `{"skills": ["Go"], "summary": "ok", "experience_level": "Mid", "ai_score": 60, "suggestions": "more detail"}`}

	cvID := uuid.New()
	cvRepo.Create(&models.CV{
		ID:               cvID,
		OriginalFileName: "jane.txt",
		FilePath:         "/uploads/cv_1.txt",
		Status:           models.StatusQueued,
	})

	processor := NewAnalysisProcessor(cvRepo, analysisRepo, storage, NewAnalyzer(NewTextExtractor(), client))

	err := processor.ProcessCV(context.Background(), cvID)
	require.NoError(t, err)

	cv, _ := cvRepo.FindByID(cvID)
	assert.Equal(t, models.StatusCompleted, cv.Status)

	require.NotNil(t, analysisRepo.result)
	assert.Equal(t, cvID, analysisRepo.result.CVID)
	assert.Equal(t, []string{"Go"}, analysisRepo.result.Skills)
	assert.Equal(t, 60.0, analysisRepo.result.AIScore)
}

func TestProcessCV_MissingFileMarksFailed(t *testing.T) {
	cvRepo := newFakeCVRepo()
	storage := &fakeStorage{files: map[string][]byte{}}
	client := &fakeModelClient{reply: "{}"}

	cvID := uuid.New()
	cvRepo.Create(&models.CV{
		ID:       cvID,
		FilePath: "/uploads/gone.pdf",
		Status:   models.StatusQueued,
	})

	processor := NewAnalysisProcessor(cvRepo, &fakeAnalysisRepo{}, storage, NewAnalyzer(NewTextExtractor(), client))

	err := processor.ProcessCV(context.Background(), cvID)
	require.Error(t, err)

	cv, _ := cvRepo.FindByID(cvID)
	assert.Equal(t, models.StatusFailed, cv.Status)
	require.NotNil(t, cv.ErrorMessage)
	assert.Contains(t, *cv.ErrorMessage, "Failed to read CV file")
	// No model call was made for an unreadable upload
	assert.Equal(t, 0, client.calls)
}

func TestProcessCV_AnalysisFailureMarksFailed(t *testing.T) {
	cvRepo := newFakeCVRepo()
	storage := &fakeStorage{files: map[string][]byte{
		"/uploads/cv_2.txt": []byte("some text"),
	}}
	client := &fakeModelClient{err: &UpstreamError{StatusCode: 500, Body: "boom"}}

	cvID := uuid.New()
	cvRepo.Create(&models.CV{
		ID:       cvID,
		FilePath: "/uploads/cv_2.txt",
		Status:   models.StatusQueued,
	})

	processor := NewAnalysisProcessor(cvRepo, &fakeAnalysisRepo{}, storage, NewAnalyzer(NewTextExtractor(), client))

	err := processor.ProcessCV(context.Background(), cvID)
	require.Error(t, err)

	cv, _ := cvRepo.FindByID(cvID)
	assert.Equal(t, models.StatusFailed, cv.Status)
	require.NotNil(t, cv.ErrorMessage)
	assert.Contains(t, *cv.ErrorMessage, "status 500")
}

func TestWorker_ProcessesEnqueuedJob(t *testing.T) {
	cvRepo := newFakeCVRepo()
	analysisRepo := &fakeAnalysisRepo{}
	storage := &fakeStorage{files: map[string][]byte{
		"/uploads/cv_3.txt": []byte("worker test cv"),
	}}
	client := &fakeModelClient{reply: `{"skills": ["Go"], "ai_score": 55}`}

	cvID := uuid.New()
	cvRepo.Create(&models.CV{
		ID:       cvID,
		FilePath: "/uploads/cv_3.txt",
		Status:   models.StatusQueued,
	})

	processor := NewAnalysisProcessor(cvRepo, analysisRepo, storage, NewAnalyzer(NewTextExtractor(), client))
	w := NewWorker(cvRepo, processor, 1, time.Hour)

	w.Start(context.Background())
	w.EnqueueJob(cvID)

	require.Eventually(t, func() bool {
		cv, _ := cvRepo.FindByID(cvID)
		return cv.Status == models.StatusCompleted
	}, 2*time.Second, 10*time.Millisecond)

	w.Stop()
	assert.NotNil(t, analysisRepo.result)
}

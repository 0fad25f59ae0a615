package get

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mes-dashboard/internal/storage"
)

type MockMasterReader struct {
	mock.Mock
}

func (m *MockMasterReader) GetMachines(ctx context.Context) ([]storage.Machine, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.Machine), args.Error(1)
}

func (m *MockMasterReader) GetMolds(ctx context.Context) ([]storage.Mold, error) {
	args := m.Called(ctx)
	return args.Get(0).([]storage.Mold), args.Error(1)
}

func (m *MockMasterReader) GetProducts(ctx context.Context) ([]storage.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]storage.Product), args.Error(1)
}

func (m *MockMasterReader) GetEmployees(ctx context.Context) ([]storage.Employee, error) {
	args := m.Called(ctx)
	return args.Get(0).([]storage.Employee), args.Error(1)
}

func (m *MockMasterReader) GetDefectTypes(ctx context.Context) ([]storage.DefectType, error) {
	args := m.Called(ctx)
	return args.Get(0).([]storage.DefectType), args.Error(1)
}

func (m *MockMasterReader) GetTeams(ctx context.Context) ([]storage.Team, error) {
	args := m.Called(ctx)
	return args.Get(0).([]storage.Team), args.Error(1)
}

func newRouter(reader MasterReader) http.Handler {
	router := chi.NewRouter()
	router.Get("/api/masterdata/{kind}", GetMasterData(slog.Default(), reader))
	return router
}

func TestGetMasterData_Machines(t *testing.T) {
	mockReader := new(MockMasterReader)
	mockReader.On("GetMachines", mock.Anything).Return([]storage.Machine{
		{ID: 1, Name: "IMM-01", IsActive: true},
		{ID: 2, Name: "IMM-02", IsActive: false},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/masterdata/machines", nil)
	rr := httptest.NewRecorder()
	newRouter(mockReader).ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var machines []storage.Machine
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &machines))
	require.Len(t, machines, 2)
	assert.Equal(t, "IMM-01", machines[0].Name)

	mockReader.AssertExpectations(t)
}

func TestGetMasterData_UnknownKind(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/masterdata/widgets", nil)
	rr := httptest.NewRecorder()
	newRouter(new(MockMasterReader)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetMasterData_StorageError(t *testing.T) {
	mockReader := new(MockMasterReader)
	mockReader.On("GetMachines", mock.Anything).Return(nil, assert.AnError)

	req := httptest.NewRequest(http.MethodGet, "/api/masterdata/machines", nil)
	rr := httptest.NewRecorder()
	newRouter(mockReader).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apierrors "github.com/yukikurage/company-tracker-api/internal/errors"
	"github.com/yukikurage/company-tracker-api/internal/models"
)

type orgNodeResponse struct {
	ID          uint64  `json:"id"`
	Type        string  `json:"type"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	DivisionID  *uint64 `json:"divisionId"`
	ManagerID   *uint64 `json:"managerId"`
}

type divisionResponse struct {
	orgNodeResponse
	Departments []orgNodeResponse `json:"departments"`
}

func TestOrgStructure_DivisionWithDepartment(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.createUser(t, "Owner")
	company := env.createCompany(t, owner, "Acme")
	token := env.sessionToken(t, owner)
	base := fmt.Sprintf("/companies/%d/org-structure", company.ID)

	w := env.do(t, http.MethodPost, base, token, map[string]interface{}{"type": "division", "name": "Eng"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var division orgNodeResponse
	decodeJSON(t, w, &division)
	assert.Equal(t, "division", division.Type)

	w = env.do(t, http.MethodPost, base, token, map[string]interface{}{
		"type":       "department",
		"name":       "Backend",
		"divisionId": division.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var department orgNodeResponse
	decodeJSON(t, w, &department)
	assert.Equal(t, "department", department.Type)
	require.NotNil(t, department.DivisionID)
	assert.Equal(t, division.ID, *department.DivisionID)

	w = env.do(t, http.MethodGet, base, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tree []divisionResponse
	decodeJSON(t, w, &tree)
	require.Len(t, tree, 1)
	assert.Equal(t, "Eng", tree[0].Name)
	assert.Equal(t, "division", tree[0].Type)
	require.Len(t, tree[0].Departments, 1)
	assert.Equal(t, "Backend", tree[0].Departments[0].Name)
	assert.Equal(t, department.ID, tree[0].Departments[0].ID)
}

func TestOrgStructure_CreateValidation(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.createUser(t, "Owner")
	company := env.createCompany(t, owner, "Acme")
	token := env.sessionToken(t, owner)
	base := fmt.Sprintf("/companies/%d/org-structure", company.ID)

	w := env.do(t, http.MethodPost, base, token, map[string]interface{}{"type": "team", "name": "X"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apierrors.ErrCodeInvalidType, errorCode(t, w))

	w = env.do(t, http.MethodPost, base, token, map[string]interface{}{"name": "X"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apierrors.ErrCodeMissingField, errorCode(t, w))

	w = env.do(t, http.MethodPost, base, token, map[string]interface{}{"type": "department", "name": "X"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apierrors.ErrCodeMissingField, errorCode(t, w))

	w = env.do(t, http.MethodPost, base, token, map[string]interface{}{"type": "department", "name": "X", "divisionId": 424242})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// A division from another company is not a valid parent
	otherCompany := env.createCompany(t, owner, "Other")
	foreign := &models.OrgNode{CompanyID: otherCompany.ID, Kind: models.OrgNodeDivision, Name: "Foreign"}
	require.NoError(t, env.db.Create(foreign).Error)
	w = env.do(t, http.MethodPost, base, token, map[string]interface{}{"type": "department", "name": "X", "divisionId": foreign.ID})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrgStructure_UpdateDispatchesOnKind(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.createUser(t, "Owner")
	company := env.createCompany(t, owner, "Acme")
	token := env.sessionToken(t, owner)

	division := &models.OrgNode{CompanyID: company.ID, Kind: models.OrgNodeDivision, Name: "Eng"}
	require.NoError(t, env.db.Create(division).Error)
	otherDivision := &models.OrgNode{CompanyID: company.ID, Kind: models.OrgNodeDivision, Name: "Ops"}
	require.NoError(t, env.db.Create(otherDivision).Error)
	manager := uint64(12)
	department := &models.OrgNode{CompanyID: company.ID, Kind: models.OrgNodeDepartment, Name: "Backend", DivisionID: &division.ID, ManagerID: &manager}
	require.NoError(t, env.db.Create(department).Error)

	// Divisions ignore department-only fields
	w := env.do(t, http.MethodPatch, fmt.Sprintf("/companies/%d/org-structure/%d", company.ID, division.ID), token,
		map[string]interface{}{"name": "Engineering", "managerId": 5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated orgNodeResponse
	decodeJSON(t, w, &updated)
	assert.Equal(t, "Engineering", updated.Name)
	assert.Nil(t, updated.ManagerID)

	w = env.do(t, http.MethodPatch, fmt.Sprintf("/companies/%d/org-structure/%d", company.ID, department.ID), token,
		map[string]interface{}{"divisionId": otherDivision.ID, "managerId": nil})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decodeJSON(t, w, &updated)
	assert.Equal(t, "Backend", updated.Name)
	require.NotNil(t, updated.DivisionID)
	assert.Equal(t, otherDivision.ID, *updated.DivisionID)
	assert.Nil(t, updated.ManagerID)

	w = env.do(t, http.MethodPatch, fmt.Sprintf("/companies/%d/org-structure/%d", company.ID, 9999), token,
		map[string]interface{}{"name": "Ghost"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrgStructure_DeleteDivisionCascades(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.createUser(t, "Owner")
	company := env.createCompany(t, owner, "Acme")
	token := env.sessionToken(t, owner)

	division := &models.OrgNode{CompanyID: company.ID, Kind: models.OrgNodeDivision, Name: "Eng"}
	require.NoError(t, env.db.Create(division).Error)
	for _, name := range []string{"Backend", "Frontend"} {
		require.NoError(t, env.db.Create(&models.OrgNode{
			CompanyID: company.ID, Kind: models.OrgNodeDepartment, Name: name, DivisionID: &division.ID,
		}).Error)
	}

	path := fmt.Sprintf("/companies/%d/org-structure/%d", company.ID, division.ID)
	w := env.do(t, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	var remaining int64
	env.db.Model(&models.OrgNode{}).Where("company_id = ?", company.ID).Count(&remaining)
	assert.Zero(t, remaining)

	w = env.do(t, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestOrgStructure_DeleteDepartmentOnly(t *testing.T) {
	env := setupTestEnv(t)
	owner := env.createUser(t, "Owner")
	company := env.createCompany(t, owner, "Acme")
	token := env.sessionToken(t, owner)

	division := &models.OrgNode{CompanyID: company.ID, Kind: models.OrgNodeDivision, Name: "Eng"}
	require.NoError(t, env.db.Create(division).Error)
	department := &models.OrgNode{CompanyID: company.ID, Kind: models.OrgNodeDepartment, Name: "Backend", DivisionID: &division.ID}
	require.NoError(t, env.db.Create(department).Error)

	w := env.do(t, http.MethodDelete, fmt.Sprintf("/companies/%d/org-structure/%d", company.ID, department.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	var nodes []models.OrgNode
	require.NoError(t, env.db.Find(&nodes).Error)
	require.Len(t, nodes, 1)
	assert.Equal(t, division.ID, nodes[0].ID)
}

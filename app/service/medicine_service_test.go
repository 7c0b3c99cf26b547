package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/hridayesh-25/CropDiseaseAdvisory/app/authz"
	"github.com/hridayesh-25/CropDiseaseAdvisory/app/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validMedicinePayload() gin.H {
	return gin.H{
		"name":          "Bavistin",
		"disease":       "Leaf Spot",
		"cropType":      "Rice",
		"priceCategory": model.PriceCategoryLow,
		"price":         120.0,
		"description":   "Systemic fungicide",
		"dosage":        "2g per liter of water",
		"manufacturer":  "BASF",
		"effectiveness": 75,
	}
}

func TestCreateMedicineStatusByRole(t *testing.T) {
	tests := []struct {
		name       string
		role       authz.Role
		wantStatus string
	}{
		{"specialist submissions queue for approval", authz.RoleSpecialist, model.MedicineStatusPending},
		{"admin submissions are approved immediately", authz.RoleAdmin, model.MedicineStatusApproved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meds := newFakeMedicineRepo()
			svc := NewMedicineService(meds)
			creator := uuid.New()

			body, ct := jsonBody(t, validMedicinePayload())
			ctx, w := testCtx(t, http.MethodPost, "/api/medicines", body, ct)
			asPrincipal(ctx, creator, tt.role)

			svc.CreateMedicine(ctx)

			require.Equal(t, http.StatusCreated, w.Code)
			require.Len(t, meds.medicines, 1)
			for _, m := range meds.medicines {
				assert.Equal(t, tt.wantStatus, m.Status)
				require.NotNil(t, m.ApprovedBy)
				assert.Equal(t, creator, *m.ApprovedBy)
			}
		})
	}
}

func TestCreateMedicineValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(gin.H)
	}{
		{"missing name", func(p gin.H) { delete(p, "name") }},
		{"missing dosage", func(p gin.H) { delete(p, "dosage") }},
		{"zero price", func(p gin.H) { p["price"] = 0 }},
		{"unknown price category", func(p gin.H) { p["priceCategory"] = "premium" }},
		{"effectiveness above 100", func(p gin.H) { p["effectiveness"] = 120 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meds := newFakeMedicineRepo()
			svc := NewMedicineService(meds)

			payload := validMedicinePayload()
			tt.mutate(payload)

			body, ct := jsonBody(t, payload)
			ctx, w := testCtx(t, http.MethodPost, "/api/medicines", body, ct)
			asPrincipal(ctx, uuid.New(), authz.RoleSpecialist)

			svc.CreateMedicine(ctx)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Empty(t, meds.medicines)
		})
	}
}

func TestUpdateMedicineEmptyPatch(t *testing.T) {
	meds := newFakeMedicineRepo()
	svc := NewMedicineService(meds)

	existing := model.Medicine{Name: "Bavistin", Status: model.MedicineStatusApproved}
	require.NoError(t, meds.Create(context.Background(), &existing))
	id := existing.ID

	body, ct := jsonBody(t, gin.H{})
	ctx, w := testCtx(t, http.MethodPut, "/api/medicines/"+id.Hex(), body, ct)
	asPrincipal(ctx, uuid.New(), authz.RoleSpecialist)
	ctx.Params = gin.Params{{Key: "id", Value: id.Hex()}}

	svc.UpdateMedicine(ctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

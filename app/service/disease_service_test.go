package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/hridayesh-25/CropDiseaseAdvisory/app/authz"
	"github.com/hridayesh-25/CropDiseaseAdvisory/app/classifier"
	"github.com/hridayesh-25/CropDiseaseAdvisory/app/model"
	"github.com/hridayesh-25/CropDiseaseAdvisory/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ---------------------------------------------------------------
// in-memory fakes
// ---------------------------------------------------------------

type fakeDiseaseRepo struct {
	cases      map[primitive.ObjectID]*model.Disease
	lastFilter bson.M
}

func newFakeDiseaseRepo() *fakeDiseaseRepo {
	return &fakeDiseaseRepo{cases: map[primitive.ObjectID]*model.Disease{}}
}

func (r *fakeDiseaseRepo) add(d model.Disease) primitive.ObjectID {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	if d.Medicines == nil {
		d.Medicines = []primitive.ObjectID{}
	}
	r.cases[d.ID] = &d
	return d.ID
}

func (r *fakeDiseaseRepo) Create(_ context.Context, d *model.Disease) error {
	d.ID = primitive.NewObjectID()
	if d.Medicines == nil {
		d.Medicines = []primitive.ObjectID{}
	}
	cp := *d
	r.cases[d.ID] = &cp
	return nil
}

func (r *fakeDiseaseRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Disease, error) {
	d, ok := r.cases[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDiseaseRepo) Find(_ context.Context, filter bson.M) ([]model.Disease, error) {
	r.lastFilter = filter
	out := []model.Disease{}
	for _, d := range r.cases {
		out = append(out, *d)
	}
	return out, nil
}

func (r *fakeDiseaseRepo) ApplyReview(_ context.Context, id primitive.ObjectID, upd repository.ReviewUpdate, expectedStatus string) (*model.Disease, error) {
	d, ok := r.cases[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if expectedStatus != "" && d.Status != expectedStatus {
		return nil, mongo.ErrNoDocuments
	}

	d.Status = upd.Status
	specialist := upd.Specialist
	d.Specialist = &specialist
	reviewedAt := upd.ReviewedAt
	d.ReviewedAt = &reviewedAt
	if upd.Notes != nil {
		d.SpecialistNotes = *upd.Notes
	}
	if upd.Medicines != nil {
		d.Medicines = *upd.Medicines
	}

	cp := *d
	return &cp, nil
}

func (r *fakeDiseaseRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	counts := map[string]int64{}
	for _, d := range r.cases {
		counts[d.Status]++
	}
	return counts, nil
}

type candidateQuery struct {
	disease  string
	cropType string
	strict   bool
	called   bool
}

type fakeMedicineRepo struct {
	medicines  map[primitive.ObjectID]model.Medicine
	candidates []model.Medicine
	lastQuery  candidateQuery
	lastFind   repository.MedicineFilter
}

func newFakeMedicineRepo() *fakeMedicineRepo {
	return &fakeMedicineRepo{medicines: map[primitive.ObjectID]model.Medicine{}}
}

func (r *fakeMedicineRepo) Create(_ context.Context, m *model.Medicine) error {
	m.ID = primitive.NewObjectID()
	r.medicines[m.ID] = *m
	return nil
}

func (r *fakeMedicineRepo) FindByID(_ context.Context, id primitive.ObjectID) (*model.Medicine, error) {
	m, ok := r.medicines[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &m, nil
}

func (r *fakeMedicineRepo) Find(_ context.Context, f repository.MedicineFilter) ([]model.Medicine, error) {
	r.lastFind = f
	return []model.Medicine{}, nil
}

func (r *fakeMedicineRepo) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]model.Medicine, error) {
	out := []model.Medicine{}
	for _, id := range ids {
		if m, ok := r.medicines[id]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMedicineRepo) Update(_ context.Context, id primitive.ObjectID, set bson.M) (*model.Medicine, error) {
	m, ok := r.medicines[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if status, ok := set["status"].(string); ok {
		m.Status = status
	}
	r.medicines[id] = m
	return &m, nil
}

func (r *fakeMedicineRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.medicines[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.medicines, id)
	return nil
}

func (r *fakeMedicineRepo) FindApprovalCandidates(_ context.Context, disease, cropType string, strict bool) ([]model.Medicine, error) {
	r.lastQuery = candidateQuery{disease: disease, cropType: cropType, strict: strict, called: true}
	return r.candidates, nil
}

func (r *fakeMedicineRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.medicines)), nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]model.User{}}
}

func (r *fakeUserRepo) Create(user *model.User) error {
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) FindByEmail(email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeUserRepo) FindByID(id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &u, nil
}

func (r *fakeUserRepo) FindByIDs(ids []uuid.UUID) (map[uuid.UUID]model.User, error) {
	out := map[uuid.UUID]model.User{}
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out[id] = u
		}
	}
	return out, nil
}

func (r *fakeUserRepo) FindRoleByName(name string) (*model.Role, error) {
	return &model.Role{ID: uuid.New(), Name: name}, nil
}

// ---------------------------------------------------------------
// test plumbing
// ---------------------------------------------------------------

type diseaseFixture struct {
	svc      *diseaseService
	diseases *fakeDiseaseRepo
	meds     *fakeMedicineRepo
	users    *fakeUserRepo
}

func newDiseaseFixture(strict bool) *diseaseFixture {
	diseases := newFakeDiseaseRepo()
	meds := newFakeMedicineRepo()
	users := newFakeUserRepo()
	svc := NewDiseaseService(diseases, meds, users, classifier.NewKeyword(), strict).(*diseaseService)
	return &diseaseFixture{svc: svc, diseases: diseases, meds: meds, users: users}
}

func testCtx(t *testing.T, method, target string, body io.Reader, contentType string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	ctx.Request = req
	return ctx, w
}

func asPrincipal(ctx *gin.Context, id uuid.UUID, role authz.Role) {
	ctx.Set("userID", id)
	ctx.Set("role", string(role))
}

func formBody(values url.Values) (io.Reader, string) {
	return strings.NewReader(values.Encode()), "application/x-www-form-urlencoded"
}

func jsonBody(t *testing.T, payload interface{}) (io.Reader, string) {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return bytes.NewReader(raw), "application/json"
}

func withCaseID(ctx *gin.Context, id primitive.ObjectID) {
	ctx.Params = gin.Params{{Key: "id", Value: id.Hex()}}
}

// ---------------------------------------------------------------
// pure helpers
// ---------------------------------------------------------------

func TestDiseaseScopeFor(t *testing.T) {
	userID := uuid.New()

	t.Run("farmer sees only own cases", func(t *testing.T) {
		assert.Equal(t, bson.M{"user": userID}, diseaseScopeFor(authz.RoleUser, userID))
	})

	t.Run("specialist sees the triage queue", func(t *testing.T) {
		assert.Equal(t, bson.M{"status": bson.M{"$in": []string{
			model.DiseaseStatusPending,
			model.DiseaseStatusReviewed,
		}}}, diseaseScopeFor(authz.RoleSpecialist, userID))
	})

	t.Run("admin is unscoped", func(t *testing.T) {
		assert.Equal(t, bson.M{}, diseaseScopeFor(authz.RoleAdmin, userID))
	})
}

func TestRankCandidates(t *testing.T) {
	med := func(category string, price float64) model.Medicine {
		return model.Medicine{
			ID:            primitive.NewObjectID(),
			PriceCategory: category,
			Price:         price,
		}
	}

	t.Run("price category sorts as a plain string", func(t *testing.T) {
		high300 := med(model.PriceCategoryHigh, 300)
		high500 := med(model.PriceCategoryHigh, 500)
		low20 := med(model.PriceCategoryLow, 20)
		low50 := med(model.PriceCategoryLow, 50)
		medium100 := med(model.PriceCategoryMedium, 100)

		got := rankCandidates([]model.Medicine{medium100, low50, high500, high300, low20})

		// "high" < "low" < "medium" lexically, then price ascending.
		want := []primitive.ObjectID{high300.ID, high500.ID, low20.ID, low50.ID, medium100.ID}
		assert.Equal(t, want, got)
	})

	t.Run("caps the selection at nine", func(t *testing.T) {
		cands := make([]model.Medicine, 0, 12)
		for i := 0; i < 12; i++ {
			cands = append(cands, med(model.PriceCategoryLow, float64(i)))
		}

		got := rankCandidates(cands)

		require.Len(t, got, 9)
		for i := 0; i < 9; i++ {
			assert.Equal(t, cands[i].ID, got[i])
		}
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		assert.Empty(t, rankCandidates(nil))
	})
}

// ---------------------------------------------------------------
// submission
// ---------------------------------------------------------------

func TestCheckDiseaseRequiresCropType(t *testing.T) {
	f := newDiseaseFixture(false)

	body, ct := formBody(url.Values{"diseaseName": {"leaf spot"}})
	ctx, w := testCtx(t, http.MethodPost, "/api/diseases/check", body, ct)
	asPrincipal(ctx, uuid.New(), authz.RoleUser)

	f.svc.CheckDisease(ctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, f.diseases.cases)
}

func TestCheckDiseaseSubmission(t *testing.T) {
	f := newDiseaseFixture(false)
	farmer := uuid.New()

	body, ct := formBody(url.Values{
		"cropType":    {"Rice"},
		"diseaseName": {"leaf spot on paddy"},
		"description": {"brown patches spreading fast"},
	})
	ctx, w := testCtx(t, http.MethodPost, "/api/diseases/check", body, ct)
	asPrincipal(ctx, farmer, authz.RoleUser)

	f.svc.CheckDisease(ctx)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, f.diseases.cases, 1)

	var stored *model.Disease
	for _, d := range f.diseases.cases {
		stored = d
	}
	assert.Equal(t, farmer, stored.User)
	assert.Equal(t, "Rice", stored.CropType)
	assert.Equal(t, "leaf spot on paddy", stored.DiseaseName)
	assert.Equal(t, model.DiseaseStatusPending, stored.Status)
	assert.Equal(t, "Leaf Spot", stored.PredictedDisease)
	assert.Equal(t, 0.85, stored.Confidence)
	assert.Empty(t, stored.Medicines, "medicines attach at review, not submission")
	assert.Nil(t, stored.Specialist, "a pending case has no specialist")
	assert.Nil(t, stored.ReviewedAt, "a pending case has no review timestamp")

	// The courtesy medicine lookup targets the predicted label.
	assert.Equal(t, repository.MedicineFilter{
		Disease:  "Leaf Spot",
		CropType: "Rice",
		Status:   model.MedicineStatusApproved,
	}, f.meds.lastFind)
}

func TestCheckDiseaseDefaultsNameToPrediction(t *testing.T) {
	f := newDiseaseFixture(false)

	body, ct := formBody(url.Values{"cropType": {"Rice"}})
	ctx, w := testCtx(t, http.MethodPost, "/api/diseases/check", body, ct)
	asPrincipal(ctx, uuid.New(), authz.RoleUser)

	f.svc.CheckDisease(ctx)

	require.Equal(t, http.StatusCreated, w.Code)
	for _, d := range f.diseases.cases {
		assert.Equal(t, "Unknown Disease", d.DiseaseName)
		assert.Equal(t, 0.5, d.Confidence)
	}
}

// ---------------------------------------------------------------
// listing and single-case access
// ---------------------------------------------------------------

func TestGetDiseasesUsesRoleScope(t *testing.T) {
	f := newDiseaseFixture(false)
	specialist := uuid.New()

	ctx, w := testCtx(t, http.MethodGet, "/api/diseases", nil, "")
	asPrincipal(ctx, specialist, authz.RoleSpecialist)

	f.svc.GetDiseases(ctx)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, diseaseScopeFor(authz.RoleSpecialist, specialist), f.diseases.lastFilter)
}

func TestGetDiseaseOwnership(t *testing.T) {
	f := newDiseaseFixture(false)
	owner := uuid.New()
	stranger := uuid.New()

	caseID := f.diseases.add(model.Disease{
		User:     owner,
		CropType: "Rice",
		Status:   model.DiseaseStatusPending,
	})

	tests := []struct {
		name      string
		principal uuid.UUID
		role      authz.Role
		wantCode  int
	}{
		{"owner reads own case", owner, authz.RoleUser, http.StatusOK},
		{"another farmer is denied", stranger, authz.RoleUser, http.StatusForbidden},
		{"specialist reads any case", stranger, authz.RoleSpecialist, http.StatusOK},
		{"admin reads any case", stranger, authz.RoleAdmin, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, w := testCtx(t, http.MethodGet, "/api/diseases/"+caseID.Hex(), nil, "")
			asPrincipal(ctx, tt.principal, tt.role)
			withCaseID(ctx, caseID)

			f.svc.GetDisease(ctx)

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}

	t.Run("unknown id is a 404", func(t *testing.T) {
		missing := primitive.NewObjectID()
		ctx, w := testCtx(t, http.MethodGet, "/api/diseases/"+missing.Hex(), nil, "")
		asPrincipal(ctx, owner, authz.RoleUser)
		withCaseID(ctx, missing)

		f.svc.GetDisease(ctx)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed id is a 400", func(t *testing.T) {
		ctx, w := testCtx(t, http.MethodGet, "/api/diseases/nope", nil, "")
		asPrincipal(ctx, owner, authz.RoleUser)
		ctx.Params = gin.Params{{Key: "id", Value: "nope"}}

		f.svc.GetDisease(ctx)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// ---------------------------------------------------------------
// review
// ---------------------------------------------------------------

func TestReviewDiseaseDefaults(t *testing.T) {
	f := newDiseaseFixture(false)
	specialist := uuid.New()

	caseID := f.diseases.add(model.Disease{
		User:   uuid.New(),
		Status: model.DiseaseStatusPending,
	})

	body, ct := jsonBody(t, gin.H{"specialistNotes": "confirmed leaf spot"})
	ctx, w := testCtx(t, http.MethodPut, "/api/diseases/"+caseID.Hex()+"/review", body, ct)
	asPrincipal(ctx, specialist, authz.RoleSpecialist)
	withCaseID(ctx, caseID)

	f.svc.ReviewDisease(ctx)

	require.Equal(t, http.StatusOK, w.Code)
	stored := f.diseases.cases[caseID]
	assert.Equal(t, model.DiseaseStatusReviewed, stored.Status)
	assert.Equal(t, "confirmed leaf spot", stored.SpecialistNotes)
	require.NotNil(t, stored.Specialist)
	assert.Equal(t, specialist, *stored.Specialist)
	assert.NotNil(t, stored.ReviewedAt)
}

func TestReviewIsIdempotent(t *testing.T) {
	f := newDiseaseFixture(false)
	specialist := uuid.New()
	medicineID := primitive.NewObjectID()

	caseID := f.diseases.add(model.Disease{
		User:   uuid.New(),
		Status: model.DiseaseStatusPending,
	})

	review := func() {
		body, ct := jsonBody(t, gin.H{
			"status":          model.DiseaseStatusReviewed,
			"specialistNotes": "apply fungicide weekly",
			"medicines":       []string{medicineID.Hex()},
		})
		ctx, w := testCtx(t, http.MethodPut, "/api/diseases/"+caseID.Hex()+"/review", body, ct)
		asPrincipal(ctx, specialist, authz.RoleSpecialist)
		withCaseID(ctx, caseID)

		f.svc.ReviewDisease(ctx)
		require.Equal(t, http.StatusOK, w.Code)
	}

	review()
	first := *f.diseases.cases[caseID]

	review()
	second := *f.diseases.cases[caseID]

	// The transition is a full overwrite, so repeating it changes
	// nothing but the review timestamp.
	first.ReviewedAt = nil
	second.ReviewedAt = nil
	assert.Equal(t, first, second)
}

func TestReviewDiseaseValidation(t *testing.T) {
	f := newDiseaseFixture(false)
	caseID := f.diseases.add(model.Disease{User: uuid.New(), Status: model.DiseaseStatusPending})

	tests := []struct {
		name    string
		payload gin.H
	}{
		{"unknown status", gin.H{"status": "escalated"}},
		{"malformed medicine id", gin.H{"medicines": []string{"not-an-oid"}}},
		{"unknown expected status", gin.H{"expectedStatus": "limbo"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, ct := jsonBody(t, tt.payload)
			ctx, w := testCtx(t, http.MethodPut, "/api/diseases/"+caseID.Hex()+"/review", body, ct)
			asPrincipal(ctx, uuid.New(), authz.RoleSpecialist)
			withCaseID(ctx, caseID)

			f.svc.ReviewDisease(ctx)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, model.DiseaseStatusPending, f.diseases.cases[caseID].Status)
		})
	}
}

func TestReviewReplacesMedicines(t *testing.T) {
	f := newDiseaseFixture(false)
	existing := primitive.NewObjectID()
	replacement := primitive.NewObjectID()

	caseID := f.diseases.add(model.Disease{
		User:      uuid.New(),
		Status:    model.DiseaseStatusPending,
		Medicines: []primitive.ObjectID{existing},
	})

	t.Run("omitted medicines stay untouched", func(t *testing.T) {
		body, ct := jsonBody(t, gin.H{"status": model.DiseaseStatusReviewed})
		ctx, w := testCtx(t, http.MethodPut, "/api/diseases/"+caseID.Hex()+"/review", body, ct)
		asPrincipal(ctx, uuid.New(), authz.RoleSpecialist)
		withCaseID(ctx, caseID)

		f.svc.ReviewDisease(ctx)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []primitive.ObjectID{existing}, f.diseases.cases[caseID].Medicines)
	})

	t.Run("explicit list replaces the set", func(t *testing.T) {
		body, ct := jsonBody(t, gin.H{"medicines": []string{replacement.Hex()}})
		ctx, w := testCtx(t, http.MethodPut, "/api/diseases/"+caseID.Hex()+"/review", body, ct)
		asPrincipal(ctx, uuid.New(), authz.RoleSpecialist)
		withCaseID(ctx, caseID)

		f.svc.ReviewDisease(ctx)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []primitive.ObjectID{replacement}, f.diseases.cases[caseID].Medicines)
	})

	t.Run("empty list clears the set", func(t *testing.T) {
		body, ct := jsonBody(t, gin.H{"medicines": []string{}})
		ctx, w := testCtx(t, http.MethodPut, "/api/diseases/"+caseID.Hex()+"/review", body, ct)
		asPrincipal(ctx, uuid.New(), authz.RoleSpecialist)
		withCaseID(ctx, caseID)

		f.svc.ReviewDisease(ctx)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, f.diseases.cases[caseID].Medicines)
	})
}

func TestReviewStatusConflict(t *testing.T) {
	f := newDiseaseFixture(false)

	caseID := f.diseases.add(model.Disease{
		User:   uuid.New(),
		Status: model.DiseaseStatusApproved,
	})

	t.Run("stale expected status is a 409", func(t *testing.T) {
		body, ct := jsonBody(t, gin.H{"expectedStatus": model.DiseaseStatusPending})
		ctx, w := testCtx(t, http.MethodPut, "/api/diseases/"+caseID.Hex()+"/review", body, ct)
		asPrincipal(ctx, uuid.New(), authz.RoleSpecialist)
		withCaseID(ctx, caseID)

		f.svc.ReviewDisease(ctx)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, model.DiseaseStatusApproved, f.diseases.cases[caseID].Status)
	})

	t.Run("matching expected status applies", func(t *testing.T) {
		body, ct := jsonBody(t, gin.H{"expectedStatus": model.DiseaseStatusApproved})
		ctx, w := testCtx(t, http.MethodPut, "/api/diseases/"+caseID.Hex()+"/review", body, ct)
		asPrincipal(ctx, uuid.New(), authz.RoleSpecialist)
		withCaseID(ctx, caseID)

		f.svc.ReviewDisease(ctx)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, model.DiseaseStatusReviewed, f.diseases.cases[caseID].Status)
	})

	t.Run("expected status on a missing case is still a 404", func(t *testing.T) {
		missing := primitive.NewObjectID()
		body, ct := jsonBody(t, gin.H{"expectedStatus": model.DiseaseStatusPending})
		ctx, w := testCtx(t, http.MethodPut, "/api/diseases/"+missing.Hex()+"/review", body, ct)
		asPrincipal(ctx, uuid.New(), authz.RoleSpecialist)
		withCaseID(ctx, missing)

		f.svc.ReviewDisease(ctx)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

// ---------------------------------------------------------------
// approval and auto-selection
// ---------------------------------------------------------------

func TestApproveWithExplicitMedicines(t *testing.T) {
	f := newDiseaseFixture(false)
	specialist := uuid.New()
	picked := []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()}

	caseID := f.diseases.add(model.Disease{
		User:             uuid.New(),
		CropType:         "Rice",
		PredictedDisease: "Leaf Spot",
		Status:           model.DiseaseStatusReviewed,
	})

	body, ct := jsonBody(t, gin.H{"medicines": []string{picked[0].Hex(), picked[1].Hex()}})
	ctx, w := testCtx(t, http.MethodPut, "/api/diseases/"+caseID.Hex()+"/approve", body, ct)
	asPrincipal(ctx, specialist, authz.RoleSpecialist)
	withCaseID(ctx, caseID)

	f.svc.ApproveDisease(ctx)

	require.Equal(t, http.StatusOK, w.Code)
	stored := f.diseases.cases[caseID]
	assert.Equal(t, model.DiseaseStatusApproved, stored.Status)
	assert.Equal(t, picked, stored.Medicines)
	require.NotNil(t, stored.Specialist)
	assert.Equal(t, specialist, *stored.Specialist)
	assert.False(t, f.meds.lastQuery.called, "explicit selection must skip auto-selection")
}

func TestApproveAutoSelection(t *testing.T) {
	f := newDiseaseFixture(false)

	med := func(category string, price float64) model.Medicine {
		m := model.Medicine{
			ID:            primitive.NewObjectID(),
			PriceCategory: category,
			Price:         price,
			Status:        model.MedicineStatusApproved,
		}
		f.meds.medicines[m.ID] = m
		return m
	}

	// Twelve candidates; only nine survive the cap.
	cands := make([]model.Medicine, 0, 12)
	for i := 0; i < 4; i++ {
		cands = append(cands, med(model.PriceCategoryLow, float64(10+i)))
		cands = append(cands, med(model.PriceCategoryMedium, float64(100+i)))
		cands = append(cands, med(model.PriceCategoryHigh, float64(500+i)))
	}
	f.meds.candidates = cands

	caseID := f.diseases.add(model.Disease{
		User:             uuid.New(),
		CropType:         "Rice",
		DiseaseName:      "spots on leaves",
		PredictedDisease: "Leaf Spot",
		Status:           model.DiseaseStatusReviewed,
	})

	body, ct := jsonBody(t, gin.H{})
	ctx, w := testCtx(t, http.MethodPut, "/api/diseases/"+caseID.Hex()+"/approve", body, ct)
	asPrincipal(ctx, uuid.New(), authz.RoleSpecialist)
	withCaseID(ctx, caseID)

	f.svc.ApproveDisease(ctx)

	require.Equal(t, http.StatusOK, w.Code)

	assert.True(t, f.meds.lastQuery.called)
	assert.Equal(t, "Leaf Spot", f.meds.lastQuery.disease, "prediction drives the match")
	assert.Equal(t, "Rice", f.meds.lastQuery.cropType)
	assert.False(t, f.meds.lastQuery.strict)

	stored := f.diseases.cases[caseID]
	assert.Equal(t, model.DiseaseStatusApproved, stored.Status)
	assert.Equal(t, rankCandidates(cands), stored.Medicines)
	assert.Len(t, stored.Medicines, 9)
}

func TestApproveFallsBackToReportedName(t *testing.T) {
	f := newDiseaseFixture(true)

	caseID := f.diseases.add(model.Disease{
		User:        uuid.New(),
		CropType:    "Wheat",
		DiseaseName: "rust on stems",
		Status:      model.DiseaseStatusPending,
	})

	body, ct := jsonBody(t, gin.H{})
	ctx, w := testCtx(t, http.MethodPut, "/api/diseases/"+caseID.Hex()+"/approve", body, ct)
	asPrincipal(ctx, uuid.New(), authz.RoleSpecialist)
	withCaseID(ctx, caseID)

	f.svc.ApproveDisease(ctx)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "rust on stems", f.meds.lastQuery.disease,
		"reported name is used when no prediction was stored")
	assert.True(t, f.meds.lastQuery.strict)
	assert.Empty(t, f.diseases.cases[caseID].Medicines)
}

func TestApproveMissingCase(t *testing.T) {
	f := newDiseaseFixture(false)
	missing := primitive.NewObjectID()

	body, ct := jsonBody(t, gin.H{})
	ctx, w := testCtx(t, http.MethodPut, "/api/diseases/"+missing.Hex()+"/approve", body, ct)
	asPrincipal(ctx, uuid.New(), authz.RoleSpecialist)
	withCaseID(ctx, missing)

	f.svc.ApproveDisease(ctx)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, f.meds.lastQuery.called)
}

// ---------------------------------------------------------------
// populated responses
// ---------------------------------------------------------------

func TestPopulateResolvesReferences(t *testing.T) {
	f := newDiseaseFixture(false)

	farmer := model.User{ID: uuid.New(), Name: "Ravi", Email: "ravi@example.com"}
	specialist := model.User{ID: uuid.New(), Name: "Dr. Rao", Email: "rao@example.com"}
	f.users.users[farmer.ID] = farmer
	f.users.users[specialist.ID] = specialist

	medicine := model.Medicine{ID: primitive.NewObjectID(), Name: "Bavistin"}
	f.meds.medicines[medicine.ID] = medicine

	reviewedAt := time.Now()
	caseDoc := model.Disease{
		ID:         primitive.NewObjectID(),
		User:       farmer.ID,
		Specialist: &specialist.ID,
		Medicines:  []primitive.ObjectID{medicine.ID, primitive.NewObjectID()},
		Status:     model.DiseaseStatusApproved,
		ReviewedAt: &reviewedAt,
	}

	ctx, _ := testCtx(t, http.MethodGet, "/api/diseases", nil, "")
	views, err := f.svc.populate(ctx, []model.Disease{caseDoc})
	require.NoError(t, err)
	require.Len(t, views, 1)

	v := views[0]
	require.NotNil(t, v.User)
	assert.Equal(t, "Ravi", v.User.Name)
	require.NotNil(t, v.Specialist)
	assert.Equal(t, "Dr. Rao", v.Specialist.Name)

	// Unknown medicine ids are dropped rather than padded.
	require.Len(t, v.Medicines, 1)
	assert.Equal(t, "Bavistin", v.Medicines[0].Name)
}

func TestPopulateUnknownPrincipal(t *testing.T) {
	f := newDiseaseFixture(false)

	orphanOwner := uuid.New()
	caseDoc := model.Disease{
		ID:   primitive.NewObjectID(),
		User: orphanOwner,
	}

	ctx, _ := testCtx(t, http.MethodGet, "/api/diseases", nil, "")
	views, err := f.svc.populate(ctx, []model.Disease{caseDoc})
	require.NoError(t, err)
	require.Len(t, views, 1)

	// A deleted account still leaves the id visible on the case.
	require.NotNil(t, views[0].User)
	assert.Equal(t, orphanOwner, views[0].User.ID)
	assert.Empty(t, views[0].User.Name)
}

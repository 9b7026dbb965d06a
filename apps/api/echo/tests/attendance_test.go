package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"

	echoapi "github.com/darasahq/darasa/apps/api/echo"
	"github.com/darasahq/darasa/core/attendance"
	"github.com/darasahq/darasa/core/student"
	"github.com/darasahq/darasa/core/user"
	testutil "github.com/darasahq/darasa/tests"
)

func Test_attendanceApi_mark(t *testing.T) {
	app := setup(t)

	studentUsr := testutil.CreateUser(t, usrRepo, "Hero", "hero", "hero@test.cd", "", []string{user.RoleStudent}, true)
	teacher := testutil.CreateUser(t, usrRepo, "Teacher", "teacher", "teacher@test.cd", "", []string{user.RoleTeacher}, true)
	teacherToken := getToken(t, teacher)
	john := testutil.CreateStudent(t, stdRepo, "John Doe", "2024", "Class A", "CBSE")
	jane := testutil.CreateStudent(t, stdRepo, "Jane Smith", "2024", "Class B", "ICSE")

	entries := []attendance.Entry{
		{StudentID: john.ID, Date: "2024-03-04", Morning: true, Afternoon: true},
		{StudentID: jane.ID, Date: "2024-03-04", Morning: true, Afternoon: true, Evening: true},
	}

	tests := []httpTest{
		{name: "Auth required", body: marchallObj(t, entries), wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Teacher required", body: marchallObj(t, entries), token: getToken(t, studentUsr), wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)},
		{
			name: "No entries", body: marchallObj(t, []attendance.Entry{}), token: teacherToken,
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "no attendance entries provided"}),
		},
		{
			name: "Bad date", body: marchallObj(t, []attendance.Entry{{StudentID: john.ID, Date: "04/03/2024"}}), token: teacherToken,
			wantCode: http.StatusBadRequest, wantData: marchallObj(t, map[string]string{"date": "must be a YYYY-MM-DD calendar day"}),
		},
		{
			name: "Attendance recorded", body: marchallObj(t, entries), token: teacherToken,
			wantCode: http.StatusOK, wantData: marchallObj(t, echoapi.SuccessResponse{Success: "attendance recorded"}),
		},
		{
			name: "Re-marking overwrites", body: marchallObj(t, []attendance.Entry{{StudentID: john.ID, Date: "2024-03-04", Morning: true}}), token: teacherToken,
			wantCode: http.StatusOK, wantData: marchallObj(t, echoapi.SuccessResponse{Success: "attendance recorded"}),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/attendance"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}

	// one record per (student, day); the re-mark dropped John's afternoon slot
	records, err := attRepo.QueryByStudent(context.Background(), john.ID, nil, 0)
	if err != nil {
		t.Fatalf("QueryByStudent(): %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("failed! len(records) = %d; want 1", len(records))
	}
	if !records[0].Morning || records[0].Afternoon || records[0].Evening {
		t.Errorf("failed! record = %+v", records[0])
	}
}

func Test_attendanceApi_queryByStudent(t *testing.T) {
	app := setup(t)

	teacher := testutil.CreateUser(t, usrRepo, "Teacher", "teacher", "teacher@test.cd", "", []string{user.RoleTeacher}, true)
	teacherToken := getToken(t, teacher)
	john := testutil.CreateStudent(t, stdRepo, "John Doe", "2024", "Class A", "CBSE")
	rec1 := testutil.CreateAttendance(t, attRepo, john.ID, "2024-03-04", true, true, false)
	rec2 := testutil.CreateAttendance(t, attRepo, john.ID, "2024-03-05", true, false, false)

	tests := []httpTest{
		{name: "Auth required", path: "/v1/attendance/students/" + john.ID, wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{
			name: "Unknown student", path: "/v1/attendance/students/lol", token: teacherToken,
			wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "student not found"}),
		},
		{
			name: "Records, most recent first", path: "/v1/attendance/students/" + john.ID, token: teacherToken,
			wantCode: http.StatusOK, wantData: marchallList(t, rec2, rec1),
		},
	}
	for _, tt := range tests {
		tt.method = http.MethodGet

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_attendanceApi_self(t *testing.T) {
	app := setup(t)

	teacher := testutil.CreateUser(t, usrRepo, "Teacher", "teacher", "teacher@test.cd", "", []string{user.RoleTeacher}, true)
	hero := testutil.CreateUser(t, usrRepo, "Hero", "hero", "hero@test.cd", "", []string{user.RoleStudent}, true)
	orphan := testutil.CreateUser(t, usrRepo, "Orphan", "orphan", "orphan@test.cd", "", []string{user.RoleStudent}, true)

	// link hero's account to a registry entry; orphan has none
	now := time.Now().UTC()
	john, err := stdRepo.CreateStudent(context.Background(), student.Student{
		ID:        uuid.New().String(),
		UserID:    hero.ID,
		Name:      "John Doe",
		Batch:     "2024",
		ClassID:   "Class A",
		Board:     "CBSE",
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateStudent(): %v", err)
	}

	testutil.CreateAttendance(t, attRepo, john.ID, "2024-03-04", true, true, false)
	testutil.CreateAttendance(t, attRepo, john.ID, "2024-03-05", false, true, false)

	t.Run("Teachers have no history of their own", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)}
		req, rec := newAuthRequest(http.MethodGet, "/v1/attendance/me", getToken(t, teacher))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("Account without registry entry", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "student not found"})}
		req, rec := newAuthRequest(http.MethodGet, "/v1/attendance/me", getToken(t, orphan))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("Own history", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/attendance/me", getToken(t, hero))
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; wantCode %v; body %v", rec.Code, http.StatusOK, rec.Body.String())
		}
		var respData echoapi.StudentAttendanceResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
			t.Fatalf("json.Unmarshal() failed! err %v", err)
		}
		// day counts as present only with 2+ of 3 slots
		if respData.Summary.PresentDays != 1 || respData.Summary.AbsentDays != 1 || respData.Summary.Rate != 50 {
			t.Errorf("failed! summary = %+v", respData.Summary)
		}
		if len(respData.Records) != 2 {
			t.Errorf("failed! len(records) = %d; want 2", len(respData.Records))
		}
	})
}

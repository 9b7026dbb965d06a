package tests

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/darasahq/darasa/core/student"
	"github.com/darasahq/darasa/core/user"
	testutil "github.com/darasahq/darasa/tests"
)

func Test_studentApi_create(t *testing.T) {
	app := setup(t)

	studentUsr := testutil.CreateUser(t, usrRepo, "Hero", "hero", "hero@test.cd", "", []string{user.RoleStudent}, true)
	teacher := testutil.CreateUser(t, usrRepo, "Teacher", "teacher", "teacher@test.cd", "", []string{user.RoleTeacher}, true)

	newStd := student.NewStudent{Name: "John Doe", Batch: "2024", ClassID: "Class A", Board: "CBSE"}

	tests := []httpTest{
		{name: "Auth required", body: marchallObj(t, newStd), wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Teacher required", body: marchallObj(t, newStd), token: getToken(t, studentUsr), wantCode: http.StatusForbidden, wantData: marchallObj(t, errForbidden)},
		{
			name: "required fields", body: marchallObj(t, student.NewStudent{}), token: getToken(t, teacher), wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, map[string]string{"name": "this field is required", "batch": "this field is required", "board": "this field is required"}),
		},
		{name: "Student created", body: marchallObj(t, newStd), token: getToken(t, teacher), wantCode: http.StatusCreated},
	}
	for _, tt := range tests {
		tt.method = http.MethodPost
		tt.path = "/v1/students"

		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusCreated {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
				}
				var respData student.Student
				if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
					t.Errorf("json.Unmarshal() failed! err %v", err)
				}
				if respData.ID == "" || respData.Name != newStd.Name {
					t.Errorf("failed! data = %v; want name %v", rec.Body.String(), newStd.Name)
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}
}

func Test_studentApi_query(t *testing.T) {
	app := setup(t)

	teacher := testutil.CreateUser(t, usrRepo, "Teacher", "teacher", "teacher@test.cd", "", []string{user.RoleTeacher}, true)
	teacherToken := getToken(t, teacher)

	jane := testutil.CreateStudent(t, stdRepo, "Jane Smith", "2024", "Class B", "ICSE")
	john := testutil.CreateStudent(t, stdRepo, "John Doe", "2024", "Class A", "CBSE")
	alex := testutil.CreateStudent(t, stdRepo, "Alex Johnson", "2024", "Class A", "CBSE")

	tests := []httpTest{
		{name: "Auth required", path: "/v1/students", wantCode: http.StatusUnauthorized, wantData: marchallObj(t, errMissingToken)},
		{name: "Default: ordered by name", path: "/v1/students", token: teacherToken, wantCode: http.StatusOK, wantData: marchallList(t, alex, jane, john)},
		{name: "ordering=-name", path: "/v1/students?ordering=-name", token: teacherToken, wantCode: http.StatusOK, wantData: marchallList(t, john, jane, alex)},
		{name: "name search", path: "/v1/students?name=john", token: teacherToken, wantCode: http.StatusOK, wantData: marchallList(t, john, alex)},
		{name: "name search (unknown)", path: "/v1/students?name=lol", token: teacherToken, wantCode: http.StatusOK, wantData: []byte("[]")},
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

func Test_studentApi_retrieveUpdateDestroy(t *testing.T) {
	app := setup(t)

	teacher := testutil.CreateUser(t, usrRepo, "Teacher", "teacher", "teacher@test.cd", "", []string{user.RoleTeacher}, true)
	teacherToken := getToken(t, teacher)
	john := testutil.CreateStudent(t, stdRepo, "John Doe", "2024", "Class A", "CBSE")

	t.Run("Retrieve unknown", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusNotFound, wantData: marchallObj(t, httpErr{Error: "student not found"})}
		req, rec := newAuthRequest(http.MethodGet, "/v1/students/lol", teacherToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("Retrieve", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, john)}
		req, rec := newAuthRequest(http.MethodGet, "/v1/students/"+john.ID, teacherToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("Update", func(t *testing.T) {
		body := marchallObj(t, student.UpdateStudent{Name: "John M Doe", Batch: "2025", ClassID: "Class B", Board: "CBSE"})
		req, rec := newAuthRequest(http.MethodPut, "/v1/students/"+john.ID, teacherToken, body)
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusOK)
		}
		var respData student.Student
		if err := json.Unmarshal(rec.Body.Bytes(), &respData); err != nil {
			t.Errorf("json.Unmarshal() failed! err %v", err)
		}
		if respData.Name != "John M Doe" || respData.Batch != "2025" {
			t.Errorf("failed! data = %v", rec.Body.String())
		}
	})

	t.Run("Destroy", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/students/"+john.ID, teacherToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusNoContent)
		}

		req, rec = newAuthRequest(http.MethodGet, "/v1/students/"+john.ID, teacherToken)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("failed! code = %v; wantCode %v", rec.Code, http.StatusNotFound)
		}
	})
}

func Test_studentApi_importCSV(t *testing.T) {
	app := setup(t)

	teacher := testutil.CreateUser(t, usrRepo, "Teacher", "teacher", "teacher@test.cd", "", []string{user.RoleTeacher}, true)
	teacherToken := getToken(t, teacher)

	t.Run("File required", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "a csv file is required"})}
		req, rec := newAuthRequest(http.MethodPost, "/v1/students/import", teacherToken)
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("Bad schema", func(t *testing.T) {
		tt := httpTest{wantCode: http.StatusBadRequest, wantData: marchallObj(t, httpErr{Error: "csv must contain 'name', 'batch' and 'board' columns"})}
		req, rec := newUploadRequest(t, "/v1/students/import", teacherToken, nil, "students.csv", []byte("name,email\nJohn Doe,john@test.cd"))
		app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("Imported", func(t *testing.T) {
		csv := strings.Join([]string{
			"name,batch,class_id,board,email,password",
			"John Doe,2024,Class A,CBSE,,",
			"Jane Smith,2024,Class B,ICSE,,",
			",2024,Class A,CBSE,,", // incomplete, dropped
		}, "\n")
		req, rec := newUploadRequest(t, "/v1/students/import", teacherToken, nil, "students.csv", []byte(csv))
		app.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; wantCode %v; body %v", rec.Code, http.StatusOK, rec.Body.String())
		}
		var res student.UploadResult
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			t.Fatalf("json.Unmarshal() failed! err %v", err)
		}
		if res.Succeeded != 2 || res.Failed != 0 || len(res.Ledger) != 2 {
			t.Errorf("failed! result = %v", rec.Body.String())
		}
	})
}

func Test_studentApi_sampleCSV(t *testing.T) {
	app := setup(t)

	teacher := testutil.CreateUser(t, usrRepo, "Teacher", "teacher", "teacher@test.cd", "", []string{user.RoleTeacher}, true)

	req, rec := newAuthRequest(http.MethodGet, "/v1/students/sample-csv", getToken(t, teacher))
	app.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; wantCode %v", rec.Code, http.StatusOK)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != "attachment; filename=student_sample.csv" {
		t.Errorf("failed! Content-Disposition = %v", cd)
	}
	if !strings.HasPrefix(rec.Body.String(), "name,batch,class_id,board,email,password") {
		t.Errorf("failed! body = %v", rec.Body.String())
	}
}

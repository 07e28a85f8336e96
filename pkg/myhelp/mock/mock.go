package mock

import (
	"context"
	"testing"

	"github.com/daariikk/myhelp-web/pkg/api/types/polyclinic"
	"github.com/daariikk/myhelp-web/pkg/myhelp"
)

type ListDoctorsBySpecializationArgs struct {
	Token            string
	SpecializationID int
}

type CreateSpecializationArgs struct {
	Token string
	Spec  polyclinic.SpecializationSpec
}

type DeleteSpecializationArgs struct {
	Token            string
	SpecializationID int
}

type CreateDoctorArgs struct {
	Token string
	Spec  polyclinic.DoctorSpec
}

type DeleteDoctorArgs struct {
	Token    string
	DoctorID int
}

type GetScheduleArgs struct {
	DoctorID int
	Date     string
}

type CreateScheduleArgs struct {
	Token    string
	DoctorID int
	Req      polyclinic.ScheduleRequest
}

type CreateAppointmentArgs struct {
	Token string
	Req   polyclinic.AppointmentRequest
}

type RateAppointmentArgs struct {
	Token         string
	AppointmentID int
	Rating        int
}

type CancelAppointmentArgs struct {
	Token         string
	AppointmentID int
}

type GetAccountArgs struct {
	Token     string
	PatientID int
}

type UpdateAccountArgs struct {
	Token     string
	PatientID int
	Profile   polyclinic.Profile
}

func New(t *testing.T) *MockClient {
	return &MockClient{t: t}
}

type MockClient struct {
	t    *testing.T
	Impl struct {
		GetUser                     func(ctx context.Context, email string) (polyclinic.UserAccount, error)
		GetAdmin                    func(ctx context.Context, email string) (polyclinic.AdminAccount, error)
		Register                    func(ctx context.Context, reg polyclinic.Registration) (polyclinic.UserAccount, error)
		IssuePatientTokens          func(ctx context.Context, cred polyclinic.Credentials) (polyclinic.Tokens, error)
		IssueAdminTokens            func(ctx context.Context, cred polyclinic.Credentials) (polyclinic.Tokens, error)
		RefreshTokens               func(ctx context.Context, refreshToken string) (polyclinic.Tokens, error)
		ListSpecializations         func(ctx context.Context) ([]polyclinic.Specialization, error)
		ListDoctorsBySpecialization func(ctx context.Context, token string, specializationID int) ([]polyclinic.Doctor, error)
		CreateSpecialization        func(ctx context.Context, token string, spec polyclinic.SpecializationSpec) (polyclinic.Specialization, error)
		DeleteSpecialization        func(ctx context.Context, token string, specializationID int) error
		ListDoctors                 func(ctx context.Context) ([]polyclinic.Doctor, error)
		CreateDoctor                func(ctx context.Context, token string, spec polyclinic.DoctorSpec) (polyclinic.Doctor, error)
		DeleteDoctor                func(ctx context.Context, token string, doctorID int) error
		GetSchedule                 func(ctx context.Context, doctorID int, date string) (polyclinic.ScheduleInfo, error)
		CreateSchedule              func(ctx context.Context, token string, doctorID int, req polyclinic.ScheduleRequest) error
		CreateAppointment           func(ctx context.Context, token string, req polyclinic.AppointmentRequest) error
		RateAppointment             func(ctx context.Context, token string, appointmentID int, rating int) error
		CancelAppointment           func(ctx context.Context, token string, appointmentID int) error
		GetAccount                  func(ctx context.Context, token string, patientID int) (polyclinic.Patient, error)
		UpdateAccount               func(ctx context.Context, token string, patientID int, profile polyclinic.Profile) (polyclinic.Patient, error)
	}
	Calls struct {
		GetUser                     []string
		GetAdmin                    []string
		Register                    []polyclinic.Registration
		IssuePatientTokens          []polyclinic.Credentials
		IssueAdminTokens            []polyclinic.Credentials
		RefreshTokens               []string
		ListSpecializations         int
		ListDoctorsBySpecialization []ListDoctorsBySpecializationArgs
		CreateSpecialization        []CreateSpecializationArgs
		DeleteSpecialization        []DeleteSpecializationArgs
		ListDoctors                 int
		CreateDoctor                []CreateDoctorArgs
		DeleteDoctor                []DeleteDoctorArgs
		GetSchedule                 []GetScheduleArgs
		CreateSchedule              []CreateScheduleArgs
		CreateAppointment           []CreateAppointmentArgs
		RateAppointment             []RateAppointmentArgs
		CancelAppointment           []CancelAppointmentArgs
		GetAccount                  []GetAccountArgs
		UpdateAccount               []UpdateAccountArgs
	}
}

var _ myhelp.Client = &MockClient{}

func (m *MockClient) GetUser(ctx context.Context, email string) (polyclinic.UserAccount, error) {
	m.t.Helper()

	m.Calls.GetUser = append(m.Calls.GetUser, email)
	if m.Impl.GetUser == nil {
		m.t.Fatal("GetUser is not ready to be called")
	}
	return m.Impl.GetUser(ctx, email)
}

func (m *MockClient) GetAdmin(ctx context.Context, email string) (polyclinic.AdminAccount, error) {
	m.t.Helper()

	m.Calls.GetAdmin = append(m.Calls.GetAdmin, email)
	if m.Impl.GetAdmin == nil {
		m.t.Fatal("GetAdmin is not ready to be called")
	}
	return m.Impl.GetAdmin(ctx, email)
}

func (m *MockClient) Register(ctx context.Context, reg polyclinic.Registration) (polyclinic.UserAccount, error) {
	m.t.Helper()

	m.Calls.Register = append(m.Calls.Register, reg)
	if m.Impl.Register == nil {
		m.t.Fatal("Register is not ready to be called")
	}
	return m.Impl.Register(ctx, reg)
}

func (m *MockClient) IssuePatientTokens(ctx context.Context, cred polyclinic.Credentials) (polyclinic.Tokens, error) {
	m.t.Helper()

	m.Calls.IssuePatientTokens = append(m.Calls.IssuePatientTokens, cred)
	if m.Impl.IssuePatientTokens == nil {
		m.t.Fatal("IssuePatientTokens is not ready to be called")
	}
	return m.Impl.IssuePatientTokens(ctx, cred)
}

func (m *MockClient) IssueAdminTokens(ctx context.Context, cred polyclinic.Credentials) (polyclinic.Tokens, error) {
	m.t.Helper()

	m.Calls.IssueAdminTokens = append(m.Calls.IssueAdminTokens, cred)
	if m.Impl.IssueAdminTokens == nil {
		m.t.Fatal("IssueAdminTokens is not ready to be called")
	}
	return m.Impl.IssueAdminTokens(ctx, cred)
}

func (m *MockClient) RefreshTokens(ctx context.Context, refreshToken string) (polyclinic.Tokens, error) {
	m.t.Helper()

	m.Calls.RefreshTokens = append(m.Calls.RefreshTokens, refreshToken)
	if m.Impl.RefreshTokens == nil {
		m.t.Fatal("RefreshTokens is not ready to be called")
	}
	return m.Impl.RefreshTokens(ctx, refreshToken)
}

func (m *MockClient) ListSpecializations(ctx context.Context) ([]polyclinic.Specialization, error) {
	m.t.Helper()

	m.Calls.ListSpecializations += 1
	if m.Impl.ListSpecializations == nil {
		m.t.Fatal("ListSpecializations is not ready to be called")
	}
	return m.Impl.ListSpecializations(ctx)
}

func (m *MockClient) ListDoctorsBySpecialization(ctx context.Context, token string, specializationID int) ([]polyclinic.Doctor, error) {
	m.t.Helper()

	m.Calls.ListDoctorsBySpecialization = append(m.Calls.ListDoctorsBySpecialization, ListDoctorsBySpecializationArgs{Token: token, SpecializationID: specializationID})
	if m.Impl.ListDoctorsBySpecialization == nil {
		m.t.Fatal("ListDoctorsBySpecialization is not ready to be called")
	}
	return m.Impl.ListDoctorsBySpecialization(ctx, token, specializationID)
}

func (m *MockClient) CreateSpecialization(ctx context.Context, token string, spec polyclinic.SpecializationSpec) (polyclinic.Specialization, error) {
	m.t.Helper()

	m.Calls.CreateSpecialization = append(m.Calls.CreateSpecialization, CreateSpecializationArgs{Token: token, Spec: spec})
	if m.Impl.CreateSpecialization == nil {
		m.t.Fatal("CreateSpecialization is not ready to be called")
	}
	return m.Impl.CreateSpecialization(ctx, token, spec)
}

func (m *MockClient) DeleteSpecialization(ctx context.Context, token string, specializationID int) error {
	m.t.Helper()

	m.Calls.DeleteSpecialization = append(m.Calls.DeleteSpecialization, DeleteSpecializationArgs{Token: token, SpecializationID: specializationID})
	if m.Impl.DeleteSpecialization == nil {
		m.t.Fatal("DeleteSpecialization is not ready to be called")
	}
	return m.Impl.DeleteSpecialization(ctx, token, specializationID)
}

func (m *MockClient) ListDoctors(ctx context.Context) ([]polyclinic.Doctor, error) {
	m.t.Helper()

	m.Calls.ListDoctors += 1
	if m.Impl.ListDoctors == nil {
		m.t.Fatal("ListDoctors is not ready to be called")
	}
	return m.Impl.ListDoctors(ctx)
}

func (m *MockClient) CreateDoctor(ctx context.Context, token string, spec polyclinic.DoctorSpec) (polyclinic.Doctor, error) {
	m.t.Helper()

	m.Calls.CreateDoctor = append(m.Calls.CreateDoctor, CreateDoctorArgs{Token: token, Spec: spec})
	if m.Impl.CreateDoctor == nil {
		m.t.Fatal("CreateDoctor is not ready to be called")
	}
	return m.Impl.CreateDoctor(ctx, token, spec)
}

func (m *MockClient) DeleteDoctor(ctx context.Context, token string, doctorID int) error {
	m.t.Helper()

	m.Calls.DeleteDoctor = append(m.Calls.DeleteDoctor, DeleteDoctorArgs{Token: token, DoctorID: doctorID})
	if m.Impl.DeleteDoctor == nil {
		m.t.Fatal("DeleteDoctor is not ready to be called")
	}
	return m.Impl.DeleteDoctor(ctx, token, doctorID)
}

func (m *MockClient) GetSchedule(ctx context.Context, doctorID int, date string) (polyclinic.ScheduleInfo, error) {
	m.t.Helper()

	m.Calls.GetSchedule = append(m.Calls.GetSchedule, GetScheduleArgs{DoctorID: doctorID, Date: date})
	if m.Impl.GetSchedule == nil {
		m.t.Fatal("GetSchedule is not ready to be called")
	}
	return m.Impl.GetSchedule(ctx, doctorID, date)
}

func (m *MockClient) CreateSchedule(ctx context.Context, token string, doctorID int, req polyclinic.ScheduleRequest) error {
	m.t.Helper()

	m.Calls.CreateSchedule = append(m.Calls.CreateSchedule, CreateScheduleArgs{Token: token, DoctorID: doctorID, Req: req})
	if m.Impl.CreateSchedule == nil {
		m.t.Fatal("CreateSchedule is not ready to be called")
	}
	return m.Impl.CreateSchedule(ctx, token, doctorID, req)
}

func (m *MockClient) CreateAppointment(ctx context.Context, token string, req polyclinic.AppointmentRequest) error {
	m.t.Helper()

	m.Calls.CreateAppointment = append(m.Calls.CreateAppointment, CreateAppointmentArgs{Token: token, Req: req})
	if m.Impl.CreateAppointment == nil {
		m.t.Fatal("CreateAppointment is not ready to be called")
	}
	return m.Impl.CreateAppointment(ctx, token, req)
}

func (m *MockClient) RateAppointment(ctx context.Context, token string, appointmentID int, rating int) error {
	m.t.Helper()

	m.Calls.RateAppointment = append(m.Calls.RateAppointment, RateAppointmentArgs{Token: token, AppointmentID: appointmentID, Rating: rating})
	if m.Impl.RateAppointment == nil {
		m.t.Fatal("RateAppointment is not ready to be called")
	}
	return m.Impl.RateAppointment(ctx, token, appointmentID, rating)
}

func (m *MockClient) CancelAppointment(ctx context.Context, token string, appointmentID int) error {
	m.t.Helper()

	m.Calls.CancelAppointment = append(m.Calls.CancelAppointment, CancelAppointmentArgs{Token: token, AppointmentID: appointmentID})
	if m.Impl.CancelAppointment == nil {
		m.t.Fatal("CancelAppointment is not ready to be called")
	}
	return m.Impl.CancelAppointment(ctx, token, appointmentID)
}

func (m *MockClient) GetAccount(ctx context.Context, token string, patientID int) (polyclinic.Patient, error) {
	m.t.Helper()

	m.Calls.GetAccount = append(m.Calls.GetAccount, GetAccountArgs{Token: token, PatientID: patientID})
	if m.Impl.GetAccount == nil {
		m.t.Fatal("GetAccount is not ready to be called")
	}
	return m.Impl.GetAccount(ctx, token, patientID)
}

func (m *MockClient) UpdateAccount(ctx context.Context, token string, patientID int, profile polyclinic.Profile) (polyclinic.Patient, error) {
	m.t.Helper()

	m.Calls.UpdateAccount = append(m.Calls.UpdateAccount, UpdateAccountArgs{Token: token, PatientID: patientID, Profile: profile})
	if m.Impl.UpdateAccount == nil {
		m.t.Fatal("UpdateAccount is not ready to be called")
	}
	return m.Impl.UpdateAccount(ctx, token, patientID, profile)
}

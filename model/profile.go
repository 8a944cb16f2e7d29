// model/profile.go
package model

import (
	"encoding/json"
	"sort"
	"time"
)

// StringSet is an unordered set of identifiers. It marshals to a sorted JSON
// array so snapshots serialize deterministically regardless of insertion
// order.
type StringSet map[string]struct{}

func NewStringSet(items ...string) StringSet {
	s := make(StringSet, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

func (s StringSet) Contains(v string) bool {
	_, ok := s[v]
	return ok
}

func (s StringSet) Values() []string {
	values := make([]string, 0, len(s))
	for v := range s {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

func (s StringSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Values())
}

func (s *StringSet) UnmarshalJSON(data []byte) error {
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*s = NewStringSet(values...)
	return nil
}

// TrainingStatus is the training slice of a user's condition snapshot.
type TrainingStatus struct {
	Completed         StringSet `json:"completed"`
	InProgress        StringSet `json:"in_progress"`
	Required          StringSet `json:"required"`
	OverallCompletion float64   `json:"overall_completion"`
}

type DOTStatus string

const (
	DOTCompliant DOTStatus = "compliant"
	DOTWarning   DOTStatus = "warning"
	DOTViolation DOTStatus = "violation"
)

type LicenseStatus string

const (
	LicenseValid     LicenseStatus = "valid"
	LicenseExpired   LicenseStatus = "expired"
	LicenseSuspended LicenseStatus = "suspended"
)

// ComplianceStatus is the regulatory slice of a user's condition snapshot.
type ComplianceStatus struct {
	DOTStatus         DOTStatus     `json:"dot_status"`
	MedicalCertExpiry *time.Time    `json:"medical_cert_expiry,omitempty"`
	LicenseStatus     LicenseStatus `json:"license_status"`
	HOSViolations     int           `json:"hos_violations"`
	SafetyScore       float64       `json:"safety_score"`
}

// Field resolves a compliance value by its condition requirement key.
func (c ComplianceStatus) Field(name string) (interface{}, bool) {
	switch name {
	case "dotStatus":
		return string(c.DOTStatus), true
	case "licenseStatus":
		return string(c.LicenseStatus), true
	case "hosViolations":
		return c.HOSViolations, true
	case "safetyScore":
		return c.SafetyScore, true
	case "medicalCertExpiry":
		if c.MedicalCertExpiry == nil {
			return nil, false
		}
		return *c.MedicalCertExpiry, true
	}
	return nil, false
}

// CertificationStatus tracks which certifications a user holds.
type CertificationStatus struct {
	Active   StringSet `json:"active"`
	Expired  StringSet `json:"expired"`
	Required StringSet `json:"required"`
}

// PerformanceStatus is the operational performance slice of a snapshot.
type PerformanceStatus struct {
	Rating          float64 `json:"rating"`
	OnTimeDelivery  float64 `json:"on_time_delivery"`
	SafetyIncidents int     `json:"safety_incidents"`
}

// Field resolves a performance value by its condition requirement key.
func (p PerformanceStatus) Field(name string) (float64, bool) {
	switch name {
	case "rating":
		return p.Rating, true
	case "onTimeDelivery":
		return p.OnTimeDelivery, true
	case "safetyIncidents":
		return float64(p.SafetyIncidents), true
	}
	return 0, false
}

// UserConditionStatus is the per-user snapshot the condition evaluator reads.
// It is produced by external HR/compliance/training systems and must be a
// consistent snapshot: the engine never mutates it.
type UserConditionStatus struct {
	Training      TrainingStatus      `json:"training"`
	Compliance    ComplianceStatus    `json:"compliance"`
	Certification CertificationStatus `json:"certification"`
	Performance   PerformanceStatus   `json:"performance"`
}

// PermissionOverride is a manual, auditable exception for one permission.
type PermissionOverride struct {
	PermissionID string     `json:"permission_id"`
	Granted      bool       `json:"granted"`
	Reason       string     `json:"reason"`
	GrantedBy    string     `json:"granted_by"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	Temporary    bool       `json:"temporary"`
}

// ActiveAt reports whether the override is in force at the given instant. A
// temporary override with a past expiry is treated as absent.
func (o PermissionOverride) ActiveAt(now time.Time) bool {
	if !o.Temporary {
		return true
	}
	return o.ExpiresAt == nil || o.ExpiresAt.After(now)
}

// UserPermissionProfile bundles everything the resolver needs about one user:
// account-level grants, the condition snapshot, and any manual overrides.
type UserPermissionProfile struct {
	UserID      string               `json:"user_id"`
	Permissions StringSet            `json:"permissions"`
	Conditions  UserConditionStatus  `json:"conditions"`
	Overrides   []PermissionOverride `json:"overrides,omitempty"`
	LastUpdated time.Time            `json:"last_updated"`
}

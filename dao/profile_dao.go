// dao/profile_dao.go
package dao

import (
	"context"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	gatekeeper_errors "github.com/fleetgate/gatekeeper/errors"
	logger "github.com/fleetgate/gatekeeper/logging"
	"github.com/fleetgate/gatekeeper/model"
	helper_util "github.com/fleetgate/gatekeeper/util/helper"
)

// ProfileDAO materializes UserPermissionProfile snapshots from the user
// graph. The engine never talks to the database: it only sees the snapshot
// this DAO returns. All reads for one profile happen inside a single read
// transaction so the snapshot is consistent (no torn reads between the
// compliance and training sub-objects).
type ProfileDAO struct {
	Driver neo4j.Driver
}

func NewProfileDAO(driver neo4j.Driver) *ProfileDAO {
	return &ProfileDAO{Driver: driver}
}

func (dao *ProfileDAO) GetProfile(ctx context.Context, userID string) (*model.UserPermissionProfile, error) {
	start := time.Now()
	logger.Debug("Loading permission profile", zap.String("userID", userID))

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(tx neo4j.Transaction) (interface{}, error) {
		profile := &model.UserPermissionProfile{UserID: userID}

		found, err := dao.readGrants(tx, userID, profile)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, gatekeeper_errors.ErrProfileNotFound
		}
		if err := dao.readTraining(tx, userID, profile); err != nil {
			return nil, err
		}
		if err := dao.readCompliance(tx, userID, profile); err != nil {
			return nil, err
		}
		if err := dao.readCertifications(tx, userID, profile); err != nil {
			return nil, err
		}
		if err := dao.readPerformance(tx, userID, profile); err != nil {
			return nil, err
		}
		if err := dao.readOverrides(tx, userID, profile); err != nil {
			return nil, err
		}

		return profile, nil
	})
	if err != nil {
		return nil, err
	}

	profile := result.(*model.UserPermissionProfile)
	logger.Debug("Permission profile loaded",
		zap.String("userID", userID),
		zap.Int("permissions", len(profile.Permissions)),
		zap.Int("overrides", len(profile.Overrides)),
		zap.Duration("duration", time.Since(start)))
	return profile, nil
}

func (dao *ProfileDAO) readGrants(tx neo4j.Transaction, userID string, profile *model.UserPermissionProfile) (bool, error) {
	result, err := tx.Run(`
        MATCH (u:User {id: $userID})
        OPTIONAL MATCH (u)-[:HAS_PERMISSION]->(p:Permission)
        RETURN u.lastUpdated AS lastUpdated, collect(p.id) AS permissions`,
		map[string]interface{}{"userID": userID})
	if err != nil {
		return false, err
	}

	record, err := result.Single()
	if err != nil {
		// Single errors when the user node does not exist.
		return false, nil
	}

	if lastUpdated, ok := record.Get("lastUpdated"); ok {
		if t, err := helper_util.ParseNullableTime(lastUpdated); err == nil && t != nil {
			profile.LastUpdated = *t
		}
	}
	profile.Permissions = model.NewStringSet(stringList(record, "permissions")...)
	return true, nil
}

func (dao *ProfileDAO) readTraining(tx neo4j.Transaction, userID string, profile *model.UserPermissionProfile) error {
	result, err := tx.Run(`
        MATCH (u:User {id: $userID})
        OPTIONAL MATCH (u)-[:COMPLETED]->(done:TrainingModule)
        OPTIONAL MATCH (u)-[:ENROLLED_IN]->(active:TrainingModule)
        OPTIONAL MATCH (u)-[:REQUIRES]->(req:TrainingModule)
        RETURN collect(DISTINCT done.id) AS completed,
               collect(DISTINCT active.id) AS inProgress,
               collect(DISTINCT req.id) AS required,
               u.overallCompletion AS overallCompletion`,
		map[string]interface{}{"userID": userID})
	if err != nil {
		return err
	}

	record, err := result.Single()
	if err != nil {
		return err
	}

	profile.Conditions.Training = model.TrainingStatus{
		Completed:         model.NewStringSet(stringList(record, "completed")...),
		InProgress:        model.NewStringSet(stringList(record, "inProgress")...),
		Required:          model.NewStringSet(stringList(record, "required")...),
		OverallCompletion: floatValue(record, "overallCompletion"),
	}
	return nil
}

func (dao *ProfileDAO) readCompliance(tx neo4j.Transaction, userID string, profile *model.UserPermissionProfile) error {
	result, err := tx.Run(`
        MATCH (u:User {id: $userID})
        OPTIONAL MATCH (u)-[:HAS_COMPLIANCE]->(c:ComplianceRecord)
        RETURN c.dotStatus AS dotStatus, c.licenseStatus AS licenseStatus,
               c.hosViolations AS hosViolations, c.safetyScore AS safetyScore,
               c.medicalCertExpiry AS medicalCertExpiry`,
		map[string]interface{}{"userID": userID})
	if err != nil {
		return err
	}

	record, err := result.Single()
	if err != nil {
		return err
	}

	compliance := model.ComplianceStatus{
		DOTStatus:     model.DOTStatus(stringValue(record, "dotStatus")),
		LicenseStatus: model.LicenseStatus(stringValue(record, "licenseStatus")),
		HOSViolations: intValue(record, "hosViolations"),
		SafetyScore:   floatValue(record, "safetyScore"),
	}
	if raw, ok := record.Get("medicalCertExpiry"); ok && raw != nil {
		if t, err := helper_util.ParseNullableTime(raw); err == nil {
			compliance.MedicalCertExpiry = t
		}
	}
	profile.Conditions.Compliance = compliance
	return nil
}

func (dao *ProfileDAO) readCertifications(tx neo4j.Transaction, userID string, profile *model.UserPermissionProfile) error {
	result, err := tx.Run(`
        MATCH (u:User {id: $userID})
        OPTIONAL MATCH (u)-[:HOLDS_CERT {status: 'active'}]->(active:Certification)
        OPTIONAL MATCH (u)-[:HOLDS_CERT {status: 'expired'}]->(expired:Certification)
        OPTIONAL MATCH (u)-[:NEEDS_CERT]->(req:Certification)
        RETURN collect(DISTINCT active.id) AS active,
               collect(DISTINCT expired.id) AS expired,
               collect(DISTINCT req.id) AS required`,
		map[string]interface{}{"userID": userID})
	if err != nil {
		return err
	}

	record, err := result.Single()
	if err != nil {
		return err
	}

	profile.Conditions.Certification = model.CertificationStatus{
		Active:   model.NewStringSet(stringList(record, "active")...),
		Expired:  model.NewStringSet(stringList(record, "expired")...),
		Required: model.NewStringSet(stringList(record, "required")...),
	}
	return nil
}

func (dao *ProfileDAO) readPerformance(tx neo4j.Transaction, userID string, profile *model.UserPermissionProfile) error {
	result, err := tx.Run(`
        MATCH (u:User {id: $userID})
        OPTIONAL MATCH (u)-[:HAS_PERFORMANCE]->(p:PerformanceRecord)
        RETURN p.rating AS rating, p.onTimeDelivery AS onTimeDelivery,
               p.safetyIncidents AS safetyIncidents`,
		map[string]interface{}{"userID": userID})
	if err != nil {
		return err
	}

	record, err := result.Single()
	if err != nil {
		return err
	}

	profile.Conditions.Performance = model.PerformanceStatus{
		Rating:          floatValue(record, "rating"),
		OnTimeDelivery:  floatValue(record, "onTimeDelivery"),
		SafetyIncidents: intValue(record, "safetyIncidents"),
	}
	return nil
}

func (dao *ProfileDAO) readOverrides(tx neo4j.Transaction, userID string, profile *model.UserPermissionProfile) error {
	result, err := tx.Run(`
        MATCH (u:User {id: $userID})-[:HAS_OVERRIDE]->(o:PermissionOverride)
        RETURN o.permissionId AS permissionId, o.granted AS granted,
               o.reason AS reason, o.grantedBy AS grantedBy,
               o.temporary AS temporary, o.expiresAt AS expiresAt`,
		map[string]interface{}{"userID": userID})
	if err != nil {
		return err
	}

	records, err := result.Collect()
	if err != nil {
		return err
	}

	for _, record := range records {
		override := model.PermissionOverride{
			PermissionID: stringValue(record, "permissionId"),
			Granted:      boolValue(record, "granted"),
			Reason:       stringValue(record, "reason"),
			GrantedBy:    stringValue(record, "grantedBy"),
			Temporary:    boolValue(record, "temporary"),
		}
		if raw, ok := record.Get("expiresAt"); ok && raw != nil {
			if t, err := helper_util.ParseNullableTime(raw); err == nil {
				override.ExpiresAt = t
			}
		}
		profile.Overrides = append(profile.Overrides, override)
	}
	return nil
}

func stringList(record *neo4j.Record, key string) []string {
	raw, ok := record.Get(key)
	if !ok || raw == nil {
		return nil
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func stringValue(record *neo4j.Record, key string) string {
	raw, ok := record.Get(key)
	if !ok || raw == nil {
		return ""
	}
	s, _ := raw.(string)
	return s
}

func boolValue(record *neo4j.Record, key string) bool {
	raw, ok := record.Get(key)
	if !ok || raw == nil {
		return false
	}
	b, _ := raw.(bool)
	return b
}

func intValue(record *neo4j.Record, key string) int {
	raw, ok := record.Get(key)
	if !ok || raw == nil {
		return 0
	}
	switch n := raw.(type) {
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}

func floatValue(record *neo4j.Record, key string) float64 {
	raw, ok := record.Get(key)
	if !ok || raw == nil {
		return 0
	}
	switch n := raw.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	}
	return 0
}

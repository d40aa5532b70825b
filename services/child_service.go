package services

import (
	"errors"
	"time"

	"healthkidz-backend/config"
	"healthkidz-backend/models"
	"healthkidz-backend/utils"
)

type ChildInput struct {
	Name          string   `json:"name"`
	BirthDate     string   `json:"birth_date"` // YYYY-MM-DD
	Gender        string   `json:"gender"`
	WeightKg      *float64 `json:"weight_kg"`
	HeightCm      *float64 `json:"height_cm"`
	ActivityLevel string   `json:"activity_level"`
}

var validGenders = map[string]bool{
	models.GenderMale: true, models.GenderFemale: true, models.GenderUnspecified: true, "": true,
}

var validActivityLevels = map[string]bool{
	models.ActivitySedentary: true, models.ActivityLightlyActive: true,
	models.ActivityModeratelyActive: true, models.ActivityVeryActive: true,
	models.ActivityExtraActive: true, "": true,
}

func (in *ChildInput) validate() (time.Time, error) {
	if in.Name == "" {
		return time.Time{}, errors.New("name is required")
	}
	birth, err := time.Parse("2006-01-02", in.BirthDate)
	if err != nil {
		return time.Time{}, errors.New("birth_date must be YYYY-MM-DD")
	}
	if birth.After(time.Now()) {
		return time.Time{}, errors.New("birth_date cannot be in the future")
	}
	if !validGenders[in.Gender] {
		return time.Time{}, errors.New("gender must be male, female or unspecified")
	}
	if !validActivityLevels[in.ActivityLevel] {
		return time.Time{}, errors.New("unknown activity_level")
	}
	return birth, nil
}

func CreateChild(userID uint, in ChildInput) (*models.Child, error) {
	birth, err := in.validate()
	if err != nil {
		return nil, err
	}
	child := &models.Child{
		UserID:        userID,
		Name:          in.Name,
		BirthDate:     birth,
		Gender:        in.Gender,
		WeightKg:      in.WeightKg,
		HeightCm:      in.HeightCm,
		ActivityLevel: in.ActivityLevel,
	}
	if err := config.DB.Create(child).Error; err != nil {
		return nil, err
	}
	return child, nil
}

func ListChildren(userID uint) ([]models.Child, error) {
	var children []models.Child
	err := config.DB.
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&children).Error
	return children, err
}

func GetChild(userID, childID uint) (*models.Child, error) {
	var child models.Child
	err := config.DB.
		Where("id = ? AND user_id = ?", childID, userID).
		First(&child).Error
	if err != nil {
		return nil, err
	}
	return &child, nil
}

func UpdateChild(userID, childID uint, in ChildInput) (*models.Child, error) {
	child, err := GetChild(userID, childID)
	if err != nil {
		return nil, err
	}
	birth, err := in.validate()
	if err != nil {
		return nil, err
	}
	child.Name = in.Name
	child.BirthDate = birth
	child.Gender = in.Gender
	child.WeightKg = in.WeightKg
	child.HeightCm = in.HeightCm
	child.ActivityLevel = in.ActivityLevel
	if err := config.DB.Save(child).Error; err != nil {
		return nil, err
	}
	return child, nil
}

func DeleteChild(userID, childID uint) error {
	child, err := GetChild(userID, childID)
	if err != nil {
		return err
	}
	return config.DB.Delete(child).Error
}

// ChildProfileView is the API shape for a child, with the derived fields the
// app shows next to the raw profile.
func ChildProfileView(child *models.Child) map[string]interface{} {
	age := utils.CalculateAge(child.BirthDate)
	view := map[string]interface{}{
		"id":             child.ID,
		"name":           child.Name,
		"birth_date":     child.BirthDate.Format("2006-01-02"),
		"age":            age,
		"gender":         child.Gender,
		"weight_kg":      child.WeightKg,
		"height_cm":      child.HeightCm,
		"activity_level": child.ActivityLevel,
	}
	if child.WeightKg != nil && child.HeightCm != nil {
		if bmi, err := utils.CalculateBMI(*child.HeightCm, *child.WeightKg); err == nil {
			view["bmi"] = bmi
			view["bmi_category"] = utils.BMICategory(bmi)
		}
	}
	return view
}

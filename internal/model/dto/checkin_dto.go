package dto

import "BoostMe/internal/model"

// ========== CheckIn 相关 DTO ==========

// SubmitCheckInRequest 提交当日打卡
type SubmitCheckInRequest struct {
	Score int    `json:"score"`
	Mood  string `json:"mood"`
	Note  string `json:"note"`
}

// TodayCheckInResponse 未打卡时 Record 为空
type TodayCheckInResponse struct {
	Record *model.CheckInRecord `json:"record"`
	Mascot model.MascotState    `json:"mascot"`
	Moods  []model.CheckInMood  `json:"moods"`
}

// HomeResponse 首页问候
type HomeResponse struct {
	Name    string               `json:"name"`
	Today   *model.CheckInRecord `json:"today"`
	Mascot  model.MascotState    `json:"mascot"`
	Stats   model.UserStats      `json:"stats"`
	Profile *model.UserProfile   `json:"profile"`
}

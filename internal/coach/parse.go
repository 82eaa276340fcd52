package coach

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"BoostMe/internal/model"
)

var ErrNoMissions = errors.New("coach: no missions generated")

// stripCodeFence 去掉模型有时包裹的 ```json 代码块
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	lines := strings.Split(s, "\n")
	lines = lines[1:]
	if n := len(lines); n > 0 && strings.HasPrefix(strings.TrimSpace(lines[n-1]), "```") {
		lines = lines[:n-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// ParseMissions 解析 {"missions": [...]}，空白项被丢弃，结果为空时报错
func ParseMissions(text string) ([]string, error) {
	var payload struct {
		Missions []string `json:"missions"`
	}
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &payload); err != nil {
		return nil, fmt.Errorf("coach: parse missions: %w", err)
	}

	out := make([]string, 0, len(payload.Missions))
	for _, m := range payload.Missions {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	if len(out) == 0 {
		return nil, ErrNoMissions
	}
	return out, nil
}

// ParseTaskSteps 解析任务拆解数组，空文本视为无步骤
func ParseTaskSteps(text string) ([]model.TaskStep, error) {
	text = stripCodeFence(text)
	if text == "" {
		return []model.TaskStep{}, nil
	}
	var steps []model.TaskStep
	if err := json.Unmarshal([]byte(text), &steps); err != nil {
		return nil, fmt.Errorf("coach: parse task steps: %w", err)
	}
	return steps, nil
}

package domain

type LedgerSummary struct {
	CurrentDay   int    `json:"current_day"`
	GoalDuration string `json:"goal_duration,omitempty"`

	Days     []int `json:"days"`
	Calories []int `json:"calories"`
	Workouts []int `json:"workouts"`

	TotalCalories   int     `json:"total_calories"`
	TotalWorkouts   int     `json:"total_workouts"`
	AverageCalories float64 `json:"average_calories"`
	DaysLogged      int     `json:"days_logged"`
	BestCalorieDay  int     `json:"best_calorie_day,omitempty"`
	LoggingStreak   int     `json:"logging_streak"`
}

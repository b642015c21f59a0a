package model

// TaskUser 任务的单个用户完成信息
type TaskUser struct {
	UserID    int    `json:"user_id"`
	Name      string `json:"name"`
	Completed string `json:"completed"`
	Important int    `json:"important"`
	Urgent    int    `json:"urgent"`
}

// Task 任务管理系统中的任务
type Task struct {
	ID          int        `json:"id"`
	Reward      *float64   `json:"reward"`
	Description string     `json:"description,omitempty"`
	Date        string     `json:"date,omitempty"`
	Task        string     `json:"task,omitempty"` // 任务类别名称
	Users       []TaskUser `json:"users"`
}

// CompletedAt 第一个用户的完成时间戳，没有则为空串
func (t Task) CompletedAt() string {
	if len(t.Users) == 0 {
		return ""
	}
	return t.Users[0].Completed
}

// Points 奖励分值，缺省为 0
func (t Task) Points() float64 {
	if t.Reward == nil {
		return 0
	}
	return *t.Reward
}

// Collaborator 任务系统中的协作者
type Collaborator struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Cellphone *string `json:"cellphone,omitempty"`
}

package worker_task

const TaskSendWelcomeEmail = "email:welcome"

const TaskOverdueReminders = "low:overdue_reminders"

const TaskMaterializeFailed = "low:materialize_failed"

type WelcomeEmailPayload struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	FullName string `json:"fullname"`
	Username string `json:"username"`
}

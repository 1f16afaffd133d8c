package tools

// Catalog returns every tool group in registration order.
func Catalog() [][]Tool {
	return [][]Tool{
		CourseTools(),
		AssignmentTools(),
		GradingTools(),
		CommunicationTools(),
		QuizTools(),
		StudentTools(),
	}
}

package models

// SeedUsers and SeedCourses are loaded into empty collections at startup.
func SeedUsers() []User {
	return []User{
		{Name: "John Smith", Email: "john@example.com"},
		{Name: "Jane Doe", Email: "jane@example.com"},
	}
}

func SeedCourses() []Course {
	return []Course{
		{Title: "JavaScript Fundamentals", Description: "Learn the basics of JavaScript programming language"},
		{Title: "React Development", Description: "Build modern web applications with React framework"},
	}
}

package seeder

import "github.com/antonio-alexander/go-employee-seeder/internal/data"

const (
	defaultPassword string = "Password@123"
	createdDate     string = "2025-01-25"
)

func managerId(id int64) *int64 {
	return &id
}

func Employees() []*data.Employee {
	return []*data.Employee{
		{
			EmpCode:    "EM001",
			FirstName:  "Rajesh",
			LastName:   "Kumar",
			Email:      "rajesh.kumar@company.com",
			PhoneNo:    "9876543210",
			Password:   defaultPassword,
			Department: "IT",
			JobTitle:   "Senior Developer",
			Gender:     "male",
			Active:     "yes",
		},
		{
			EmpCode:    "EM002",
			FirstName:  "Priya",
			LastName:   "Singh",
			Email:      "priya.singh@company.com",
			PhoneNo:    "9876543211",
			Password:   defaultPassword,
			Department: "HR",
			JobTitle:   "HR Manager",
			Gender:     "female",
			ManagerId:  managerId(1),
			Active:     "yes",
		},
		{
			EmpCode:    "EM003",
			FirstName:  "Amit",
			LastName:   "Patel",
			Email:      "amit.patel@company.com",
			PhoneNo:    "9876543212",
			Password:   defaultPassword,
			Department: "Sales",
			JobTitle:   "Sales Executive",
			Gender:     "male",
			ManagerId:  managerId(1),
			Active:     "yes",
		},
	}
}

func ReviewCycles() []*data.ReviewCycle {
	return []*data.ReviewCycle{
		{
			CycleName:   "Q1 2025 Performance Review",
			StartDate:   "2025-01-01",
			EndDate:     "2025-03-31",
			Status:      data.CycleStatusInProgress,
			Description: "First quarter performance evaluation for all employees",
		},
		{
			CycleName:   "Q2 2025 Performance Review",
			StartDate:   "2025-04-01",
			EndDate:     "2025-06-30",
			Status:      data.CycleStatusPlanned,
			Description: "Second quarter performance evaluation for all employees",
		},
	}
}

func Goals() []*data.Goal {
	return []*data.Goal{
		{
			Title:           "Complete API Development",
			DescriptionText: "Build comprehensive REST APIs for employee management system",
			Status:          "in progress",
			EmpId:           1,
			EmpName:         "Rajesh Kumar",
			CreatedBy:       "Admin",
			StartDate:       "2025-01-15",
			EndDate:         "2025-03-15",
		},
		{
			Title:           "HR Process Improvement",
			DescriptionText: "Streamline and automate the recruitment process",
			Status:          "in progress",
			EmpId:           2,
			EmpName:         "Priya Singh",
			CreatedBy:       "Admin",
			StartDate:       "2025-01-20",
			EndDate:         "2025-02-28",
		},
		{
			Title:           "Sales Target Q1",
			DescriptionText: "Achieve 50 new leads and close 10 deals",
			Status:          "in progress",
			EmpId:           3,
			EmpName:         "Amit Patel",
			CreatedBy:       "Admin",
			StartDate:       "2025-01-01",
			EndDate:         "2025-03-31",
		},
	}
}

func Reviews() []*data.Review {
	return []*data.Review{
		{
			EmpId:         1,
			EmpName:       "Rajesh Kumar",
			ReviewCycleId: 1,
			ReviewerId:    2,
			ReviewerName:  "Priya Singh",
			Rating:        4.5,
			Comments:      "Excellent technical skills and problem-solving abilities. Great team player.",
			Status:        "submitted",
			CreatedDate:   createdDate,
		},
		{
			EmpId:         2,
			EmpName:       "Priya Singh",
			ReviewCycleId: 1,
			ReviewerId:    1,
			ReviewerName:  "Rajesh Kumar",
			Rating:        4.0,
			Comments:      "Good leadership and strategic HR management skills. Needs more hands-on involvement.",
			Status:        "submitted",
			CreatedDate:   createdDate,
		},
		{
			EmpId:         3,
			EmpName:       "Amit Patel",
			ReviewCycleId: 1,
			ReviewerId:    1,
			ReviewerName:  "Rajesh Kumar",
			Rating:        3.5,
			Comments:      "Good sales performance but needs improvement in follow-up and documentation.",
			Status:        "submitted",
			CreatedDate:   createdDate,
		},
	}
}

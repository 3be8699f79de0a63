package repository

import "photobooking/internal/model"

func classFixture() model.Class {
	return model.Class{
		Name:            "Night Photography",
		InstructorName:  "Ana",
		InstructorEmail: " Ana@Example.com",
		AvailableSeats:  12,
		PriceCents:      4900,
	}
}

func selectionFixture() model.Selection {
	return model.Selection{
		StudentEmail: "student@example.com",
		ClassID:      9,
		ClassName:    "Night Photography",
		PriceCents:   4900,
	}
}

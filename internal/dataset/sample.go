package dataset

import (
	"time"

	"github.com/tOgg1/carewatch/internal/models"
)

var (
	clinicRiverside = models.Clinic{ID: "clinic-riverside", Name: "Riverside Family Practice"}
	clinicNorthgate = models.Clinic{ID: "clinic-northgate", Name: "Northgate Cardiology"}
	clinicLakeview  = models.Clinic{ID: "clinic-lakeview", Name: "Lakeview Orthopedics"}
)

func at(day, hour, minute int) time.Time {
	return time.Date(2026, time.February, day, hour, minute, 0, 0, time.UTC)
}

func clinic(c models.Clinic) *models.Clinic {
	return &c
}

// Sample returns the built-in demonstration collection. Each call returns
// an independent copy.
func Sample() []models.Conversation {
	return []models.Conversation{
		{
			ID:              "conv-1001",
			PatientName:     "Michael Chen",
			Phone:           "(555) 214-7781",
			Email:           "michael.chen@example.com",
			LastMessage:     "The swelling around the incision got worse overnight.",
			Timestamp:       at(4, 9, 30),
			Assistant:       "CareBot",
			Status:          models.StatusNeedsAttention,
			Sentiment:       models.SentimentAnxious,
			Context:         "Day 3 after laparoscopic appendectomy. Reports increasing swelling and mild fever.",
			NextAppointment: "Feb 6, 2026 at 10:00 AM",
			Clinic:          clinic(clinicRiverside),
			Protocol:        models.StringPtr("Post-Surgery Recovery"),
			Companion:       models.StringPtr("Ava"),
			Messages: []models.Message{
				{Sender: models.SenderBot, Content: "Good morning Michael, how is your recovery going today?", Timestamp: at(4, 9, 0)},
				{Sender: models.SenderUser, Content: "Not great. The area around the incision looks red.", Timestamp: at(4, 9, 12)},
				{Sender: models.SenderBot, Content: "I'm sorry to hear that. Have you noticed any fever or discharge?", Timestamp: at(4, 9, 13)},
				{Sender: models.SenderUser, Content: "A little fever last night, 100.4.", Timestamp: at(4, 9, 25)},
				{Sender: models.SenderUser, Content: "The swelling around the incision got worse overnight.", Timestamp: at(4, 9, 30)},
			},
		},
		{
			ID:              "conv-1002",
			PatientName:     "Sarah Johnson",
			Phone:           "(555) 381-0042",
			Email:           "sarah.j@example.com",
			LastMessage:     "Thank you! I'll keep logging my readings.",
			Timestamp:       at(4, 8, 15),
			Assistant:       "CareBot",
			Status:          models.StatusActive,
			Sentiment:       models.SentimentHappy,
			Context:         "Type 2 diabetes, started metformin two weeks ago. Fasting glucose trending down.",
			NextAppointment: "Feb 18, 2026 at 2:30 PM",
			Clinic:          clinic(clinicRiverside),
			Protocol:        models.StringPtr("Diabetes Management"),
			Companion:       models.StringPtr("Leo"),
			Messages: []models.Message{
				{Sender: models.SenderBot, Content: "Hi Sarah, what was your fasting glucose this morning?", Timestamp: at(4, 8, 0)},
				{Sender: models.SenderUser, Content: "118, lower than last week!", Timestamp: at(4, 8, 9)},
				{Sender: models.SenderBot, Content: "That's great progress. Keep taking metformin with breakfast.", Timestamp: at(4, 8, 10)},
				{Sender: models.SenderUser, Content: "Thank you! I'll keep logging my readings.", Timestamp: at(4, 8, 15)},
			},
		},
		{
			ID:              "conv-1003",
			PatientName:     "Robert Williams",
			Phone:           "(555) 907-6630",
			Email:           "rwilliams@example.com",
			LastMessage:     "Blood pressure was 128/82 this morning.",
			Timestamp:       at(3, 19, 45),
			Assistant:       "CareBot",
			Status:          models.StatusResolved,
			Sentiment:       models.SentimentNeutral,
			Context:         "Hypertension, lisinopril 10mg. Home readings within target for two weeks.",
			NextAppointment: "Mar 2, 2026 at 9:15 AM",
			Clinic:          clinic(clinicNorthgate),
			Protocol:        models.StringPtr("Hypertension Monitoring"),
			Companion:       models.StringPtr("Mira"),
			Messages: []models.Message{
				{Sender: models.SenderBot, Content: "Good evening Robert, please share today's reading.", Timestamp: at(3, 19, 30)},
				{Sender: models.SenderUser, Content: "Blood pressure was 128/82 this morning.", Timestamp: at(3, 19, 45)},
			},
		},
		{
			ID:              "conv-1004",
			PatientName:     "Emily Davis",
			Phone:           "(555) 620-1187",
			Email:           "emily.davis@example.com",
			LastMessage:     "I keep feeling dizzy when I stand up.",
			Timestamp:       at(4, 7, 50),
			Assistant:       "CareBot",
			Status:          models.StatusNeedsAttention,
			Sentiment:       models.SentimentSad,
			Context:         "Started new antihypertensive on Feb 1. Reports orthostatic dizziness.",
			NextAppointment: "Feb 5, 2026 at 11:30 AM",
			Clinic:          clinic(clinicNorthgate),
			Protocol:        models.StringPtr("Hypertension Monitoring"),
			Companion:       models.StringPtr("Mira"),
			Messages: []models.Message{
				{Sender: models.SenderBot, Content: "Hi Emily, how are you feeling on the new medication?", Timestamp: at(4, 7, 30)},
				{Sender: models.SenderUser, Content: "I keep feeling dizzy when I stand up.", Timestamp: at(4, 7, 50)},
			},
		},
		{
			ID:              "conv-1005",
			PatientName:     "James Martinez",
			Phone:           "(555) 118-4409",
			Email:           "j.martinez@example.com",
			LastMessage:     "Why does nobody call me back about the MRI?",
			Timestamp:       at(4, 10, 5),
			Assistant:       "CareBot",
			Status:          models.StatusNeedsAttention,
			Sentiment:       models.SentimentAngry,
			Context:         "Knee replacement candidate. Waiting on MRI scheduling for 9 days.",
			NextAppointment: "Pending MRI",
			Clinic:          clinic(clinicLakeview),
			Companion:       models.StringPtr("Ava"),
			Messages: []models.Message{
				{Sender: models.SenderUser, Content: "I was told someone would call me to schedule the MRI.", Timestamp: at(4, 9, 55)},
				{Sender: models.SenderBot, Content: "I understand the frustration. I've flagged this for the care team.", Timestamp: at(4, 9, 56)},
				{Sender: models.SenderUser, Content: "Why does nobody call me back about the MRI?", Timestamp: at(4, 10, 5)},
			},
		},
		{
			ID:              "conv-1006",
			PatientName:     "Linda Thompson",
			Phone:           "(555) 455-2290",
			Email:           "linda.t@example.com",
			LastMessage:     "Walked 20 minutes today with no pain.",
			Timestamp:       at(3, 16, 20),
			Assistant:       "CareBot",
			Status:          models.StatusActive,
			Sentiment:       models.SentimentHappy,
			Context:         "Hip replacement, week 4 of physical therapy.",
			NextAppointment: "Feb 11, 2026 at 1:00 PM",
			Clinic:          clinic(clinicLakeview),
			Protocol:        models.StringPtr("Post-Surgery Recovery"),
			Companion:       models.StringPtr("Leo"),
			Messages: []models.Message{
				{Sender: models.SenderBot, Content: "How did today's exercises go, Linda?", Timestamp: at(3, 16, 0)},
				{Sender: models.SenderUser, Content: "Walked 20 minutes today with no pain.", Timestamp: at(3, 16, 20)},
			},
		},
		{
			ID:              "conv-1007",
			PatientName:     "Michael Chen",
			Phone:           "(555) 214-7781",
			Email:           "michael.chen@example.com",
			LastMessage:     "Got it, I'll fast after midnight.",
			Timestamp:       at(1, 18, 0),
			Assistant:       "CareBot",
			Status:          models.StatusResolved,
			Sentiment:       models.SentimentNeutral,
			Context:         "Pre-operative instructions before appendectomy.",
			NextAppointment: "Feb 2, 2026 at 7:00 AM",
			Clinic:          clinic(clinicRiverside),
			Protocol:        models.StringPtr("Post-Surgery Recovery"),
			Companion:       models.StringPtr("Ava"),
			Messages: []models.Message{
				{Sender: models.SenderBot, Content: "Reminder: no food or drink after midnight before surgery.", Timestamp: at(1, 17, 45)},
				{Sender: models.SenderUser, Content: "Got it, I'll fast after midnight.", Timestamp: at(1, 18, 0)},
			},
		},
		{
			ID:              "conv-1008",
			PatientName:     "Aisha Patel",
			Phone:           "(555) 732-5518",
			Email:           "aisha.patel@example.com",
			LastMessage:     "Is it normal to feel this tired at 20 weeks?",
			Timestamp:       at(4, 9, 30),
			Assistant:       "CareBot",
			Status:          models.StatusActive,
			Sentiment:       models.SentimentAnxious,
			Context:         "Second pregnancy, 20 weeks. Mild anemia on last labs.",
			NextAppointment: "Feb 9, 2026 at 3:45 PM",
			Messages: []models.Message{
				{Sender: models.SenderUser, Content: "Is it normal to feel this tired at 20 weeks?", Timestamp: at(4, 9, 30)},
			},
		},
	}
}

package catalog

// Default returns the built-in content of the civic-education dashboard.
func Default() *Catalog {
	return New(defaultRoles(), defaultResources(), defaultDiscussions())
}

func defaultRoles() map[Role]RoleInfo {
	return map[Role]RoleInfo{
		RoleAdmin: {
			Icon:  "⚙️",
			Title: "Administrator: Platform Oversight",
			Intro: "As the **Admin**, your duty is the **integrity and security** of the entire platform. " +
				"You are the ultimate gatekeeper of constitutional accuracy and user data.",
			Responsibilities: []string{
				"Vetting and approving all new content.",
				"Managing user roles and permissions.",
				"Monitoring system performance and security.",
				"Conducting periodic data accuracy audits.",
			},
			Features: []Feature{
				{Title: "User Management", Description: "Control user accounts and assign roles."},
				{Title: "Content Vetting Queue", Description: "Review and approve all submitted educational materials."},
			},
		},
		RoleEducator: {
			Icon:  "📚",
			Title: "Educator: Content & Engagement",
			Intro: "As an **Educator**, you create engaging, simplified learning modules to make the " +
				"Constitution **accessible to everyone**.",
			Responsibilities: []string{
				"Designing interactive quizzes and assessments.",
				"Developing multimedia lessons on governance.",
				"Conducting live virtual sessions for clarification.",
				"Moderating educational discussions.",
			},
			Features: []Feature{
				{Title: "Lesson Builder", Description: "Tool for structuring articles, videos, and quizzes into courses."},
				{Title: "Session Scheduler", Description: "Organize and promote live teaching sessions."},
			},
		},
		RoleCitizen: {
			Icon:  "🧑‍🤝‍🧑",
			Title: "Citizen: Explore & Participate",
			Intro: "As a **Citizen**, your role is to explore the Constitution, **understand your rights and duties**, " +
				"and participate in informed civic discussions.",
			Responsibilities: []string{
				"Utilizing the Rights Explorer tool (Part III).",
				"Engaging in forums to discuss responsibilities and duties.",
				"Taking quizzes to test constitutional knowledge.",
				"Submitting feedback on content clarity.",
			},
			Features: []Feature{
				{Title: "Rights Explorer", Description: "Interactive guide to Fundamental Rights and Directive Principles."},
				{Title: "Civic Discussion Forum", Description: "Area to connect with others and debate constitutional topics."},
			},
		},
		RoleLegalExpert: {
			Icon:  "⚖️",
			Title: "Legal Expert: Authority & Updates",
			Intro: "As a **Legal Expert**, you provide **authoritative guidance**, ensure content is legally accurate, " +
				"and track constitutional amendments.",
			Responsibilities: []string{
				"Reviewing all articles for legal precision.",
				"Maintaining a database of amendments and judgments.",
				"Providing advanced legal insights and answering complex queries.",
				"Drafting explanatory notes for challenging articles.",
			},
			Features: []Feature{
				{Title: "Amendment Tracker", Description: "Detailed log of all Constitutional Amendment Acts."},
				{Title: "Legal Q&A Portal", Description: "Dedicated section for handling expert-level constitutional questions."},
			},
		},
	}
}

func defaultResources() []Resource {
	return []Resource{
		{ID: 1, Title: "Full Text of the Constitution", Type: "PDF", Link: "#"},
		{ID: 2, Title: "Landmark Judgments (Kesavananda Bharati)", Type: "Case Study", Link: "#"},
		{ID: 3, Title: "List of Fundamental Duties (Article 51-A)", Type: "Checklist", Link: "#"},
	}
}

func defaultDiscussions() []DiscussionTopic {
	return []DiscussionTopic{
		{ID: 101, Title: "Debate: Should Voting be a Fundamental Duty?", Author: "Citizen", Replies: 15},
		{ID: 102, Title: "Query: Interpretation of Article 21", Author: "Legal Expert", Replies: 5},
		{ID: 103, Title: "Feedback: Clarity on Preamble", Author: "Educator", Replies: 8},
	}
}

package catalog

func sampleContents() Contents {
	return Contents{
		Developer: Developer{
			Name:             developerName,
			Role:             developerRole,
			Bio:              developerBio,
			About:            developerAbout,
			MonthlyListeners: "892,301",
			Verified:         true,
			ProfileImage:     "https://picsum.photos/id/64/800/800",
		},
		Projects: []Project{
			{
				ID:              "1",
				Title:           "E-Commerce Titan",
				Description:     "A high-performance storefront built with Next.js and Stripe integration.",
				LongDescription: titanLong,
				Tech:            []string{"Next.js", "Tailwind", "Stripe", "PostgreSQL"},
				Duration:        "3:45",
				ImageURL:        "https://picsum.photos/id/1/600/600",
				Stars:           2400,
				DemoURL:         "https://example.com/demo1",
				RepoURL:         "https://github.com/alexjean/titan",
			},
			{
				ID:              "2",
				Title:           "AI Chat Interface",
				Description:     "Gemini-powered chatbot with real-time streaming and context awareness.",
				LongDescription: chatLong,
				Tech:            []string{"React", "Gemini API", "Socket.io", "Node.js"},
				Duration:        "4:20",
				ImageURL:        "https://picsum.photos/id/2/600/600",
				Stars:           1800,
				DemoURL:         "https://example.com/demo2",
				RepoURL:         "https://github.com/alexjean/ai-chat",
			},
			{
				ID:              "3",
				Title:           "Crypto Dashboard",
				Description:     "Real-time visualization of market data using D3.js and WebSockets.",
				LongDescription: cryptoLong,
				Tech:            []string{"D3.js", "TypeScript", "Vite", "Redis"},
				Duration:        "2:15",
				ImageURL:        "https://picsum.photos/id/3/600/600",
				Stars:           950,
				DemoURL:         "https://example.com/demo3",
				RepoURL:         "https://github.com/alexjean/crypto-dash",
			},
			{
				ID:              "4",
				Title:           "Social Media Engine",
				Description:     "Scalable backend architecture for a distributed social platform.",
				LongDescription: socialLong,
				Tech:            []string{"Node.js", "Redis", "PostgreSQL", "Docker"},
				Duration:        "5:10",
				ImageURL:        "https://picsum.photos/id/4/600/600",
				Stars:           3200,
				DemoURL:         "https://example.com/demo4",
				RepoURL:         "https://github.com/alexjean/social-engine",
			},
		},
		Experiences: []Experience{
			{
				ID:          "exp1",
				Company:     "Tech Giant Inc.",
				Role:        "Senior Software Engineer",
				Period:      "2021 - Present",
				Description: "Leading frontend architecture and mentoring junior developers.",
				ImageURL:    "https://picsum.photos/id/5/100/100",
				Achievements: []Achievement{
					{Title: "Design system rollout", Impact: "4:12"},
					{Title: "Cut bundle size by 40%", Impact: "3:05"},
				},
			},
			{
				ID:          "exp2",
				Company:     "Creative Studio",
				Role:        "Frontend Developer",
				Period:      "2019 - 2021",
				Description: "Built interactive web experiences for global brands.",
				ImageURL:    "https://picsum.photos/id/6/100/100",
				Achievements: []Achievement{
					{Title: "Award-winning campaign microsite", Impact: "2:48"},
				},
			},
			{
				ID:          "exp3",
				Company:     "Startup Hub",
				Role:        "Full Stack Intern",
				Period:      "2018 - 2019",
				Description: "Full stack development using MERN stack.",
				ImageURL:    "https://picsum.photos/id/7/100/100",
				Achievements: []Achievement{
					{Title: "Shipped onboarding flow", Impact: "1:30"},
				},
			},
		},
		Skills: []Skill{
			{Name: "Frontend", Category: "web"},
			{Name: "React", Category: "web"},
			{Name: "Backend", Category: "server"},
			{Name: "Cloud", Category: "infra"},
			{Name: "Database", Category: "data"},
			{Name: "Architecture", Category: "design"},
			{Name: "Mobile", Category: "web"},
			{Name: "AI & ML", Category: "data"},
		},
		TourDates: []TourDate{
			{Date: "MAR 14", Event: "React Summit", Location: "Amsterdam, NL", Link: "https://example.com/talks/react-summit"},
			{Date: "JUN 02", Event: "NodeConf", Location: "Kilkenny, IE", Link: "https://example.com/talks/nodeconf"},
			{Date: "SEP 21", Event: "Local Dev Meetup", Location: "Remote", Link: "https://example.com/talks/meetup"},
		},
		Merch: []MerchItem{
			{ID: "m1", Name: "Resume (Deluxe Edition)", Type: "PDF", ImageURL: "https://picsum.photos/id/20/300/300", Price: "Free"},
			{ID: "m2", Name: "Open Source Sticker Pack", Type: "Sticker", ImageURL: "https://picsum.photos/id/21/300/300", Price: "$0.00"},
		},
		Hackathons: []Hackathon{
			{ID: "h1", Name: "HackMIT", Result: "1st Place", Date: "2023", Project: "AI Chat Interface"},
			{ID: "h2", Name: "ETHGlobal", Result: "Finalist", Date: "2022", Project: "Crypto Dashboard"},
		},
		Achievements: []GlobalAchievement{
			{ID: "a1", Title: "AWS Certified", Issuer: "Amazon", Date: "2023", Description: "Solutions Architect Associate certification."},
			{ID: "a2", Title: "Top Contributor", Issuer: "GitHub", Date: "2022", Description: "Recognized for open source contributions across React tooling."},
			{ID: "a3", Title: "Speaker", Issuer: "React Summit", Date: "2024", Description: "Talk on streaming UI patterns for AI products."},
			{ID: "a4", Title: "Hackathon Winner", Issuer: "HackMIT", Date: "2023", Description: "First place with a real-time AI chat interface."},
		},
	}
}

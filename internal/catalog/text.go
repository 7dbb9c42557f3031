package catalog

var (
	developerName = "Alex Jean"

	developerRole = "Full Stack Engineer"

	developerBio = `Full stack engineer specializing in React, Node.js, and AI integration. Building high-performance web applications with a focus on UI/UX and scalable architectures.`

	developerAbout = `I love building software that's both useful and fun, and I'm always curious about how things work behind the scenes.
	Most of my projects start with a simple idea and turn into a chance to learn something new, whether it's exploring a
	different language, experimenting with tools, or solving tricky problems.
	When I'm not coding, you'll usually find me crate-digging for vinyl or sketching system diagrams on whatever paper is nearby.`

	titanLong = `Titan is a next-generation e-commerce platform designed for massive scale. It features a custom-built headless CMS,
	lightning-fast edge rendering via Next.js, and a fully integrated global payment flow using Stripe's latest APIs.
	The architecture focuses on accessibility, performance (99+ Lighthouse scores), and seamless mobile experiences.`

	chatLong = `This advanced AI assistant leverages the Gemini Pro model to provide intelligent, context-aware responses in real-time.
	Built with a robust WebSocket layer for streaming text generation, it includes features like persistent conversation history,
	file attachment parsing, and custom persona configuration.`

	cryptoLong = `A comprehensive financial dashboard that visualizes real-time cryptocurrency trends across multiple exchanges.
	Using high-performance D3.js rendering, the app handles thousands of data points per second with smooth transitions.
	It includes a custom technical analysis toolkit and personalized alert systems driven by background worker processes.`

	socialLong = `The engine behind a distributed social network that handles millions of requests daily. It utilizes a microservices
	architecture with Redis for caching and pub/sub messaging. The system implements complex graph relationships for user feeds,
	high-concurrency notification delivery, and distributed asset storage with automated CDN purging.`
)

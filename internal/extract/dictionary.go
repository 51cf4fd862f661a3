package extract

// skillDictionary is the canonical technology/skill vocabulary. Scan
// order is dictionary order: extracted skill lists are ordered by first
// dictionary hit, not by position in the text, which keeps extraction
// deterministic across runs. Entries keep their canonical casing.
var skillDictionary = []string{
	// Languages
	"Python", "Java", "JavaScript", "TypeScript", "Go", "Golang", "C++",
	"C#", "C", "Ruby", "PHP", "Swift", "Kotlin", "Rust", "Scala", "R",
	"MATLAB", "Perl", "Objective-C", "Dart", "Elixir", "Haskell",
	"Visual Basic", "COBOL", "Fortran", "Groovy", "Lua", "Shell Scripting",
	"Bash", "PowerShell",

	// Web frontend
	"HTML", "CSS", "React", "React.js", "Angular", "AngularJS", "Vue",
	"Vue.js", "Next.js", "Nuxt.js", "Svelte", "jQuery", "Bootstrap",
	"Tailwind CSS", "Sass", "Redux", "Webpack", "Vite",

	// Backend frameworks
	"Node.js", "Express", "Express.js", "Django", "Flask", "FastAPI",
	"Spring", "Spring Boot", "Hibernate", "Laravel", "Ruby on Rails",
	"ASP.NET", ".NET", "Gin", "Echo", "Fiber", "NestJS", "GraphQL",
	"REST API", "gRPC", "WebSockets", "Microservices",

	// Mobile
	"Android", "iOS", "React Native", "Flutter", "Xamarin", "SwiftUI",

	// Databases
	"SQL", "MySQL", "PostgreSQL", "SQLite", "Oracle", "SQL Server",
	"MongoDB", "Redis", "Cassandra", "DynamoDB", "Elasticsearch",
	"Neo4j", "Firebase", "MariaDB", "Couchbase", "InfluxDB", "Snowflake",
	"BigQuery", "Redshift",

	// Cloud and infrastructure
	"AWS", "Amazon Web Services", "Azure", "GCP", "Google Cloud",
	"Docker", "Kubernetes", "Terraform", "Ansible", "Jenkins",
	"GitHub Actions", "GitLab CI", "CircleCI", "CI/CD", "Helm",
	"Prometheus", "Grafana", "Nginx", "Apache", "Linux", "Unix",
	"Serverless", "Lambda", "EC2", "S3", "CloudFormation", "OpenShift",
	"Vagrant", "Puppet", "Chef",

	// Data and ML
	"Machine Learning", "Deep Learning", "Data Science", "Data Analysis",
	"Data Engineering", "NLP", "Natural Language Processing",
	"Computer Vision", "TensorFlow", "PyTorch", "Keras", "Scikit-learn",
	"Pandas", "NumPy", "Matplotlib", "Spark", "Apache Spark", "Hadoop",
	"Kafka", "Apache Kafka", "Airflow", "ETL", "Data Warehousing",
	"Power BI", "Tableau", "Looker", "Excel", "Statistics",
	"Artificial Intelligence", "LLM", "Generative AI", "OpenCV",
	"Reinforcement Learning", "MLOps", "Feature Engineering",

	// Testing and quality
	"Unit Testing", "Integration Testing", "Selenium", "Cypress",
	"Jest", "Mocha", "JUnit", "PyTest", "Test Automation", "TDD", "QA",
	"Load Testing", "Postman",

	// Tools and practices
	"Git", "GitHub", "GitLab", "Bitbucket", "Jira", "Confluence",
	"Agile", "Scrum", "Kanban", "DevOps", "SRE", "Design Patterns",
	"OOP", "Functional Programming", "System Design",
	"Distributed Systems", "Message Queues", "RabbitMQ", "Celery",
	"OAuth", "JWT", "SAML", "Cybersecurity", "Penetration Testing",
	"Cryptography", "Blockchain", "Solidity",

	// Design and product
	"UI/UX", "Figma", "Adobe XD", "Photoshop", "Illustrator",
	"Wireframing", "Prototyping", "Product Management",

	// Soft skills that show up in requirement documents
	"Communication", "Leadership", "Teamwork", "Problem Solving",
	"Critical Thinking", "Time Management", "Project Management",
	"Stakeholder Management", "Mentoring", "Presentation",
}

// technologyEquivalents groups names that hiring text treats as the
// same technology. Used only by the fourth matching tier in scoring;
// kept here next to the dictionary so the two vocabularies evolve
// together. All entries are lowercase.
var technologyEquivalents = [][]string{
	{"sql", "mysql", "postgresql", "ms sql", "sql server"},
	{"postgres", "postgresql"},
	{"aws", "amazon web services"},
	{"gcp", "google cloud", "google cloud platform"},
	{"azure", "microsoft azure"},
	{"js", "javascript"},
	{"ts", "typescript"},
	{"go", "golang"},
	{"react", "react.js", "reactjs"},
	{"angular", "angularjs", "angular.js"},
	{"vue", "vue.js", "vuejs"},
	{"node", "node.js", "nodejs"},
	{"express", "express.js", "expressjs"},
	{"ml", "machine learning"},
	{"ai", "artificial intelligence"},
	{"dl", "deep learning"},
	{"nlp", "natural language processing"},
	{"cv", "computer vision"},
	{"k8s", "kubernetes"},
	{"ci/cd", "cicd", "continuous integration", "continuous delivery"},
	{"mongo", "mongodb"},
	{"c#", "csharp", ".net"},
	{"oop", "object oriented programming", "object-oriented programming"},
	{"rest", "rest api", "restful"},
	{"spark", "apache spark"},
	{"kafka", "apache kafka"},
	{"ui/ux", "ui", "ux", "user experience", "user interface"},
}

// SkillDictionary returns the canonical skill vocabulary. The backing
// array is process-wide constant data; callers must not modify the
// returned slice.
func SkillDictionary() []string {
	return skillDictionary
}

// TechnologyEquivalents returns the synonym groups used by equivalence
// matching. Read-only, same contract as SkillDictionary.
func TechnologyEquivalents() [][]string {
	return technologyEquivalents
}

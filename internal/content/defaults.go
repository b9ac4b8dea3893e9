package content

import "github.com/seenimoa/smartcam/internal/chart"

// Default returns the built-in proposal content.
func Default() Page {
	return Page{
		Lang:     "vi",
		Title:    "Smart Security Camera",
		Subtitle: "Hệ thống giám sát thông minh",
		Eyebrow:  "🎥 AI · Computer Vision · Cảnh báo thời gian thực",
		Intro: "Trong kỷ nguyên số hóa và đô thị hóa nhanh chóng, nhu cầu an ninh ngày càng tăng. " +
			"Camera truyền thống chỉ ghi hình thụ động, chưa đủ để phát hiện và ngăn chặn sự cố. " +
			"Giải pháp mới là camera giám sát thông minh ứng dụng AI và Computer Vision, có khả năng phân tích video, " +
			"nhận diện đối tượng, phát hiện hành vi bất thường và cảnh báo theo thời gian thực.",
		Goals: []string{
			"Xây dựng hệ thống camera an ninh thông minh phân tích hình ảnh/video theo thời gian thực.",
			"Ứng dụng mô hình AI (YOLO, EfficientNet, MobileNet) để phát hiện người, chuyển động bất thường hoặc xâm nhập.",
			"Cung cấp cảnh báo tức thời qua giao diện hoặc thiết bị di động.",
			"Thiết kế pipeline xử lý video và giao diện hiển thị cảnh báo.",
			"Kiểm thử và đánh giá hiệu suất hệ thống.",
		},
		Scope: []string{
			"Tập trung vào phát hiện người và chuyển động bất thường.",
			"Thử nghiệm trên video và camera IP nội bộ.",
			"Không tích hợp IoT phức tạp như khóa điện tử hay cửa tự động.",
		},
		Methods: []string{
			"Nghiên cứu tài liệu về AI, CNN, Object Detection.",
			"Phân tích – thiết kế hệ thống (use case, sơ đồ dữ liệu, kiến trúc).",
			"Huấn luyện/fine-tune mô hình AI trên dataset phù hợp.",
			"Kiểm thử thực tế và đánh giá hiệu suất (độ chính xác, FPS, độ trễ cảnh báo).",
		},
		ExpectedResults: []string{
			"Hệ thống camera thông minh hoàn chỉnh, phát hiện người/xâm nhập theo thời gian thực.",
			"Giao diện hiển thị video và cảnh báo.",
			"Báo cáo chi tiết về độ chính xác và hiệu suất mô hình.",
		},
		Significance: Significance{
			Science:  "Đóng góp kinh nghiệm ứng dụng AI và Computer Vision trong giám sát.",
			Practice: "Nâng cao an toàn cho gia đình, cửa hàng, công ty với chi phí thấp; tiềm năng mở rộng thành sản phẩm thương mại.",
		},
		ThesisContent: []string{
			"Chương 1: Tổng quan hệ thống",
			"Chương 2: Phân tích và thiết kế hệ thống",
			"Chương 3: Triển khai và đánh giá kết quả",
		},
		CTAs: []Link{
			{Label: "Xem mục tiêu", Href: "#muc-tieu", Primary: true},
			{Label: "Xem phương pháp", Href: "#phuong-phap"},
		},
		SummaryTitle: "Tóm tắt nhanh",
		Summary: "Trọng tâm: phát hiện người/xâm nhập và chuyển động bất thường, vận hành trên video hoặc " +
			"camera IP nội bộ.",
		Metrics: []Metric{
			{Label: "Mô hình", Value: "YOLO · EfficientNet · MobileNet"},
			{Label: "Tín hiệu đánh giá", Value: "Accuracy · FPS · Latency"},
			{Label: "Luồng xử lý", Value: "Video → AI → Cảnh báo"},
			{Label: "Kết quả", Value: "UI video + cảnh báo"},
		},
		Sections: []Section{
			{ID: "gioi-thieu", Nav: "Giới thiệu", Title: "🌐 Giới thiệu", Hint: "Bối cảnh & nhu cầu", Body: BodyIntro},
			{ID: "muc-tieu", Nav: "Mục tiêu", Title: "🎯 Mục tiêu", Hint: "Những gì hệ thống hướng tới", Body: BodyGoals},
			{ID: "pham-vi", Nav: "Phạm vi", Title: "🔍 Phạm vi nghiên cứu", Hint: "Giới hạn & trọng tâm", Body: BodyScope},
			{ID: "phuong-phap", Nav: "Phương pháp", Title: "🛠️ Phương pháp", Hint: "Cách tiếp cận triển khai", Body: BodyMethods},
			{ID: "ket-qua", Nav: "Kết quả", Title: "📈 Kết quả dự kiến", Hint: "Deliverables mong đợi", Body: BodyResults},
			{ID: "y-nghia", Nav: "Ý nghĩa", Title: "💡 Ý nghĩa", Hint: "Giá trị khoa học & thực tiễn", Body: BodySignificance},
		},
		Chart: chart.Spec{
			Title:    "Biểu đồ đánh giá hiệu suất",
			Subtitle: "Phân bổ trọng số các chỉ số khi tổng hợp đánh giá (có thể thay bằng số liệu thật).",
			Segments: []chart.Segment{
				{Label: "Accuracy", Value: 55, Display: "Ưu tiên"},
				{Label: "FPS", Value: 25, Display: "Tốc độ"},
				{Label: "Latency", Value: 20, Display: "Độ trễ"},
			},
		},
		Footer: []string{
			"Đơn vị: Khoa Kỹ thuật máy tính và Điện tử, Trường Đại học Công nghệ Thông tin & Truyền thông Việt - Hàn (VKU).",
			"Giáo Viên Hướng Dẫn: ThS.Nguyễn Thị Huyền",
		},
	}
}
